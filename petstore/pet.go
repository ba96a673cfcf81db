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

// PetAPI covers /pet.
type PetAPI struct{ a *API }

// FindByStatus lists pets in any of statuses. No status means "available".
func (p *PetAPI) FindByStatus(ctx context.Context, statuses ...string) ([]model.Pet, error) {
	if len(statuses) == 0 {
		statuses = []string{model.PetAvailable}
	}
	return send[[]model.Pet](ctx, p.a, request.Get("/pet/findByStatus",
		request.WithQuery("status", statuses...)))
}

// Get fetches one pet.
func (p *PetAPI) Get(ctx context.Context, id int64) (model.Pet, error) {
	return send[model.Pet](ctx, p.a, request.Get("/pet/{petId}",
		request.WithParam("petId", itoa(id))))
}

// Add creates a pet; the reply carries the assigned id.
func (p *PetAPI) Add(ctx context.Context, pet model.Pet) (model.Pet, error) {
	return send[model.Pet](ctx, p.a, request.Post("/pet", request.WithBody(pet)))
}

// Update replaces a pet. pet.ID is required.
func (p *PetAPI) Update(ctx context.Context, pet model.Pet) (model.Pet, error) {
	return send[model.Pet](ctx, p.a, request.Put("/pet", request.WithBody(pet)))
}

// UpdateWithForm changes a pet's name and status.
func (p *PetAPI) UpdateWithForm(ctx context.Context, id int64, name, status string) (model.Pet, error) {
	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if status != "" {
		body["status"] = status
	}
	return send[model.Pet](ctx, p.a, request.Post("/pet/{petId}",
		request.WithParam("petId", itoa(id)), request.WithBody(body)))
}

// Delete removes a pet. It needs the API key set with WithAPIKey.
func (p *PetAPI) Delete(ctx context.Context, id int64) (model.Status, error) {
	opts := []request.Option{request.WithParam("petId", itoa(id))}
	if p.a.apiKey != "" {
		opts = append(opts, request.WithHeader("api_key", p.a.apiKey))
	}
	return send[model.Status](ctx, p.a, request.Delete("/pet/{petId}", opts...))
}

// UploadImage attaches an image to a pet.
func (p *PetAPI) UploadImage(ctx context.Context, id int64, metadata string) (model.Upload, error) {
	return send[model.Upload](ctx, p.a, request.Post("/pet/{petId}/uploadImage",
		request.WithParam("petId", itoa(id)),
		request.WithBody(map[string]any{"additionalMetadata": metadata})))
}
