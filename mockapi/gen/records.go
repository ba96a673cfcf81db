/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package gen

import (
	"fmt"
	"strings"

	"dirpx.dev/apiflow/model"
)

// Pet returns a pet with a populated category, one to three tags and one
// to three photo URLs. Zero id and empty status are randomized.
func (g *Gen) Pet(id int64, status string) model.Pet {
	if id == 0 {
		id = int64(g.Number(1, 10000))
	}
	if status == "" {
		status = Pick(g, model.PetStatuses)
	}
	return model.Pet{
		ID:       id,
		Category: Pick(g, Categories),
		Name:     g.Name("Pet"),
		PhotoURLs: Array(g.Number(1, 4), func(i int) string {
			return fmt.Sprintf("https://example.com/pet/%d/photo%d.jpg", id, i+1)
		}),
		Tags:   Array(g.Number(1, 4), func(int) model.Tag { return Pick(g, Tags) }),
		Status: status,
	}
}

// Order returns an order shipping within 1..30 days.
func (g *Gen) Order(id int64, status string) model.Order {
	if id == 0 {
		id = int64(g.Number(1, 10000))
	}
	if status == "" {
		status = Pick(g, model.OrderStatuses)
	}
	return model.Order{
		ID:       id,
		PetID:    int64(g.Number(1, 1000)),
		Quantity: g.Number(1, 11),
		ShipDate: g.Datetime(g.Number(1, 31)),
		Status:   status,
		Complete: g.Bool(),
	}
}

// User returns a user. An empty username is randomized; a negative status
// is randomized among offline, online and busy.
func (g *Gen) User(username string, status int) model.User {
	if username == "" {
		username = strings.ToLower(g.Name("user"))
	}
	if status < 0 {
		status = Pick(g, []int{model.UserOffline, model.UserOnline, model.UserBusy})
	}
	return model.User{
		ID:         int64(g.Number(1, 10000)),
		Username:   username,
		FirstName:  g.Name("First"),
		LastName:   g.Name("Last"),
		Email:      username + "@example.com",
		Password:   "password123",
		Phone:      fmt.Sprintf("1%d", g.Number(1000000000, 9999999999)),
		UserStatus: status,
	}
}

// Inventory returns counts per order and pet status.
func (g *Gen) Inventory() model.Inventory {
	inv := model.Inventory{}
	for _, s := range model.OrderStatuses {
		inv[s] = g.Number(0, 101)
	}
	inv[model.PetPending] = g.Number(0, 51)
	inv[model.PetSold] = g.Number(0, 201)
	inv[model.PetAvailable] = g.Number(10, 301)
	return inv
}
