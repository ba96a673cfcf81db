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
	"strings"

	"dirpx.dev/apiflow/model"
	"github.com/google/uuid"
)

// PetRoutes serves /pet.
func (b *Backend) PetRoutes() []Route {
	return []Route{
		On(http.MethodPost, "/pet/{petId}/uploadImage", b.uploadImage),
		On(http.MethodPost, "/pet", b.addPet),
		On(http.MethodPut, "/pet", b.updatePet),
		On(http.MethodGet, "/pet/findByStatus", b.findPetsByStatus),
		On(http.MethodGet, "/pet/{petId}", b.getPet),
		On(http.MethodPost, "/pet/{petId}", b.updatePetWithForm),
		On(http.MethodDelete, "/pet/{petId}", b.deletePet),
	}
}

func (b *Backend) uploadImage(_ context.Context, c Call) Result {
	id := c.Param("petId")
	return Success(map[string]any{
		"code":    200,
		"type":    "success",
		"message": "Image uploaded successfully for pet " + id,
		"data": map[string]any{
			"petId":    id,
			"imageUrl": fmt.Sprintf("https://example.com/pet/%s/uploaded-%s.jpg", id, uuid.NewString()),
		},
	})
}

func (b *Backend) addPet(_ context.Context, c Call) Result {
	return Success(merge(nil, c.Data(), map[string]any{"id": b.gen.Number(10001, 20000)}))
}

func (b *Backend) updatePet(_ context.Context, c Call) Result {
	data := c.Data()
	if !truthy(data["id"]) {
		return Failure(http.StatusBadRequest, "Pet ID is required")
	}
	return Success(merge(nil, data, map[string]any{"updatedAt": b.gen.Datetime(0)}))
}

func (b *Backend) findPetsByStatus(_ context.Context, c Call) Result {
	statuses := c.Query["status"]
	if len(statuses) == 0 {
		statuses = []string{""}
	}
	var invalid []string
	for _, s := range statuses {
		if !model.ValidPetStatus(s) {
			invalid = append(invalid, s)
		}
	}
	if len(invalid) > 0 {
		return Failure(http.StatusBadRequest, "Invalid status value: "+strings.Join(invalid, ", "))
	}
	n := b.gen.Number(5, 15)
	pets := make([]model.Pet, 0, n)
	for i := 0; i < n; i++ {
		pets = append(pets, b.gen.Pet(0, statuses[i%len(statuses)]))
	}
	return Success(pets)
}

// petID parses the petId parameter, answering the shared 400/404 cases.
func petID(c Call) (int64, *Result) {
	id, ok := parseInt(c.Param("petId"))
	if !ok {
		r := Failure(http.StatusBadRequest, "Invalid pet ID")
		return 0, &r
	}
	if id == 404 {
		r := Failure(http.StatusNotFound, "Pet not found")
		return 0, &r
	}
	return id, nil
}

func (b *Backend) getPet(_ context.Context, c Call) Result {
	id, fail := petID(c)
	if fail != nil {
		return *fail
	}
	return Success(b.gen.Pet(id, ""))
}

func (b *Backend) updatePetWithForm(_ context.Context, c Call) Result {
	id, fail := petID(c)
	if fail != nil {
		return *fail
	}
	return Success(merge(b.gen.Pet(id, ""), c.Data(), map[string]any{"updatedAt": b.gen.Datetime(0)}))
}

func (b *Backend) deletePet(_ context.Context, c Call) Result {
	id, ok := parseInt(c.Param("petId"))
	if !ok {
		return Failure(http.StatusBadRequest, "Invalid pet ID")
	}
	if c.Header.Get("api_key") == "" {
		return Failure(http.StatusUnauthorized, "API key is required")
	}
	if id == 404 {
		return Failure(http.StatusNotFound, "Pet not found")
	}
	return Success(model.Status{Code: 200, Message: fmt.Sprintf("Pet %d deleted successfully", id)})
}
