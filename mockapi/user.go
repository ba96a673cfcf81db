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
	"context"
	"fmt"
	"net/http"

	"dirpx.dev/apiflow/model"
)

// UserRoutes serves /user. Fixed paths are registered before
// "/user/{username}" so that they win.
func (b *Backend) UserRoutes() []Route {
	return []Route{
		On(http.MethodPost, "/user/createWithArray", b.createUsers("an array", "")),
		On(http.MethodPost, "/user/createWithList", b.createUsers("a list", " from list")),
		On(http.MethodGet, "/user/login", b.login),
		On(http.MethodGet, "/user/logout", b.logout),
		On(http.MethodGet, "/user/{username}", b.getUser),
		On(http.MethodPut, "/user/{username}", b.updateUser),
		On(http.MethodDelete, "/user/{username}", b.deleteUser),
		On(http.MethodPost, "/user", b.createUser),
	}
}

func (b *Backend) createUsers(shape, suffix string) Handler {
	return func(_ context.Context, c Call) Result {
		list, ok := c.Body.([]any)
		if !ok {
			return Failure(http.StatusBadRequest, fmt.Sprintf("Input should be %s of users", shape))
		}
		for _, item := range list {
			u, _ := item.(map[string]any)
			if !truthy(u["username"]) {
				return Failure(http.StatusBadRequest, "Username is required for all users")
			}
		}
		return Success(model.Status{Code: 200, Message: fmt.Sprintf("Successfully created %d users%s", len(list), suffix)})
	}
}

func (b *Backend) login(_ context.Context, c Call) Result {
	username, password := c.Query.Get("username"), c.Query.Get("password")
	if username == "" || password == "" {
		return Failure(http.StatusBadRequest, "Username and password are required")
	}
	if username == "invalid" || password == "invalid" {
		return Failure(http.StatusBadRequest, "Invalid username/password supplied")
	}
	token, err := b.tokens.Issue(username)
	if err != nil {
		return Failure(http.StatusInternalServerError, err.Error())
	}
	return Success(model.Session{
		Code:      200,
		Message:   "logged in user session",
		Token:     token,
		ExpiresIn: int(b.tokens.TTL().Seconds()),
		User:      b.gen.User(username, model.UserOnline),
	})
}

func (b *Backend) logout(context.Context, Call) Result {
	return Success(model.Status{Code: 200, Message: "ok"})
}

// username answers the shared 400/404 cases.
func username(c Call) (string, *Result) {
	name := c.Param("username")
	if name == "" {
		r := Failure(http.StatusBadRequest, "Username is required")
		return "", &r
	}
	if name == "notfound" {
		r := Failure(http.StatusNotFound, "User not found")
		return "", &r
	}
	return name, nil
}

func (b *Backend) getUser(_ context.Context, c Call) Result {
	name, fail := username(c)
	if fail != nil {
		return *fail
	}
	if u, ok := b.seededUser(name); ok {
		return Success(u)
	}
	return Success(b.gen.User(name, -1))
}

func (b *Backend) updateUser(_ context.Context, c Call) Result {
	name, fail := username(c)
	if fail != nil {
		return *fail
	}
	return Success(merge(b.gen.User(name, -1), c.Data(), map[string]any{
		"username":  name,
		"updatedAt": b.gen.Datetime(0),
	}))
}

func (b *Backend) deleteUser(_ context.Context, c Call) Result {
	name, fail := username(c)
	if fail != nil {
		return *fail
	}
	return Success(model.Status{Code: 200, Message: fmt.Sprintf("User %s deleted successfully", name)})
}

func (b *Backend) createUser(_ context.Context, c Call) Result {
	data := c.Data()
	if !truthy(data["username"]) {
		return Failure(http.StatusBadRequest, "Username is required")
	}
	if name, ok := data["username"].(string); ok {
		if _, exists := b.seededUser(name); exists {
			return Failure(http.StatusConflict, "Username already exists")
		}
	}
	return Success(merge(b.gen.User("", -1), data, map[string]any{
		"id":        b.gen.Number(20001, 30000),
		"createdAt": b.gen.Datetime(0),
	}))
}
