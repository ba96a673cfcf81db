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

// Package model holds the pet store records exchanged between the typed
// API and the backend (real or mock).
package model

// Pet statuses.
const (
	PetAvailable = "available"
	PetPending   = "pending"
	PetSold      = "sold"
)

// Order statuses.
const (
	OrderPlaced    = "placed"
	OrderApproved  = "approved"
	OrderDelivered = "delivered"
)

// PetStatuses lists the valid pet statuses.
var PetStatuses = []string{PetAvailable, PetPending, PetSold}

// OrderStatuses lists the valid order statuses.
var OrderStatuses = []string{OrderPlaced, OrderApproved, OrderDelivered}

// ValidPetStatus reports whether s is a known pet status.
func ValidPetStatus(s string) bool {
	for _, v := range PetStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Pet struct {
	ID        int64    `json:"id,omitempty"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	PhotoURLs []string `json:"photoUrls"`
	Tags      []Tag    `json:"tags,omitempty"`
	Status    string   `json:"status,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type Order struct {
	ID       int64  `json:"id,omitempty"`
	PetID    int64  `json:"petId"`
	Quantity int    `json:"quantity"`
	ShipDate string `json:"shipDate,omitempty"`
	Status   string `json:"status,omitempty"`
	Complete bool   `json:"complete"`
}

// User status values.
const (
	UserOffline = 0
	UserOnline  = 1
	UserBusy    = 2
)

type User struct {
	ID         int64  `json:"id,omitempty"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone,omitempty"`
	UserStatus int    `json:"userStatus"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Inventory maps a status to a count.
type Inventory map[string]int

// Session is the login reply.
type Session struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      User   `json:"user"`
}

// Status is the {code, message} acknowledgement returned by deletes,
// logouts and bulk creates.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Upload is the reply to an image upload.
type Upload struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    struct {
		PetID    string `json:"petId"`
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}
