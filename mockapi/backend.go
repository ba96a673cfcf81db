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

package mockapi

import (
	"fmt"
	"slices"

	"dirpx.dev/apiflow/mockapi/gen"
	"dirpx.dev/apiflow/model"
)

// Backend owns the state the mock routes share: the generator, the seeded
// user directory and the token issuer.
type Backend struct {
	gen    *gen.Gen
	tokens *Tokens
	users  []model.User
}

// SeededUsers is the number of users "user1".."userN" that exist up front.
const SeededUsers = 10

// NewBackend returns a Backend drawing from g and signing login tokens with
// tokens.
func NewBackend(g *gen.Gen, tokens *Tokens) *Backend {
	b := &Backend{gen: g, tokens: tokens}
	b.users = gen.Array(SeededUsers, func(i int) model.User {
		return g.User(fmt.Sprintf("user%d", i+1), -1)
	})
	return b
}

// Routes returns every module's routes: pet, store, user, then the common
// catch-alls.
func (b *Backend) Routes() []Route {
	return slices.Concat(b.PetRoutes(), b.StoreRoutes(), b.UserRoutes(), CommonRoutes())
}

// Table compiles Routes.
func (b *Backend) Table() (*Table, error) {
	return NewTable(b.Routes()...)
}

func (b *Backend) seededUser(username string) (model.User, bool) {
	for _, u := range b.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}
