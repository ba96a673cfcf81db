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

package petstore

import (
	"context"

	"dirpx.dev/apiflow/model"
	"dirpx.dev/apiflow/request"
)

// UserAPI covers /user.
type UserAPI struct{ a *API }

// Login exchanges credentials for a session token.
func (u *UserAPI) Login(ctx context.Context, username, password string) (model.Session, error) {
	return send[model.Session](ctx, u.a, request.Get("/user/login",
		request.WithQuery("username", username),
		request.WithQuery("password", password)))
}

// Logout ends the session.
func (u *UserAPI) Logout(ctx context.Context) (model.Status, error) {
	return send[model.Status](ctx, u.a, request.Get("/user/logout"))
}

// Get fetches a user by name.
func (u *UserAPI) Get(ctx context.Context, username string) (model.User, error) {
	return send[model.User](ctx, u.a, request.Get("/user/{username}",
		request.WithParam("username", username)))
}

// Create registers a user.
func (u *UserAPI) Create(ctx context.Context, user model.User) (model.User, error) {
	return send[model.User](ctx, u.a, request.Post("/user", request.WithBody(user)))
}

// Update changes a user. The path name wins over user.Username.
func (u *UserAPI) Update(ctx context.Context, username string, user model.User) (model.User, error) {
	return send[model.User](ctx, u.a, request.Put("/user/{username}",
		request.WithParam("username", username), request.WithBody(user)))
}

// Delete removes a user.
func (u *UserAPI) Delete(ctx context.Context, username string) (model.Status, error) {
	return send[model.Status](ctx, u.a, request.Delete("/user/{username}",
		request.WithParam("username", username)))
}

// CreateWithList registers several users at once.
func (u *UserAPI) CreateWithList(ctx context.Context, users []model.User) (model.Status, error) {
	return send[model.Status](ctx, u.a, request.Post("/user/createWithList", request.WithBody(users)))
}

// CreateWithArray is CreateWithList on the array endpoint.
func (u *UserAPI) CreateWithArray(ctx context.Context, users []model.User) (model.Status, error) {
	return send[model.Status](ctx, u.a, request.Post("/user/createWithArray", request.WithBody(users)))
}
