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

// StoreAPI covers /store.
type StoreAPI struct{ a *API }

// Inventory returns pet counts by status.
func (s *StoreAPI) Inventory(ctx context.Context) (model.Inventory, error) {
	return send[model.Inventory](ctx, s.a, request.Get("/store/inventory"))
}

// PlaceOrder orders a pet.
func (s *StoreAPI) PlaceOrder(ctx context.Context, o model.Order) (model.Order, error) {
	return send[model.Order](ctx, s.a, request.Post("/store/order", request.WithBody(o)))
}

// GetOrder fetches an order; valid ids are 1 to 10.
func (s *StoreAPI) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	return send[model.Order](ctx, s.a, request.Get("/store/order/{orderId}",
		request.WithParam("orderId", itoa(id))))
}

// DeleteOrder cancels an order.
func (s *StoreAPI) DeleteOrder(ctx context.Context, id int64) (model.Status, error) {
	return send[model.Status](ctx, s.a, request.Delete("/store/order/{orderId}",
		request.WithParam("orderId", itoa(id))))
}
