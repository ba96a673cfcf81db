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

// StoreRoutes serves /store.
func (b *Backend) StoreRoutes() []Route {
	return []Route{
		On(http.MethodGet, "/store/inventory", b.inventory),
		On(http.MethodPost, "/store/order", b.placeOrder),
		On(http.MethodGet, "/store/order/{orderId}", b.getOrder),
		On(http.MethodDelete, "/store/order/{orderId}", b.deleteOrder),
	}
}

func (b *Backend) inventory(context.Context, Call) Result {
	return Success(b.gen.Inventory())
}

func (b *Backend) placeOrder(_ context.Context, c Call) Result {
	data := c.Data()
	if !truthy(data["petId"]) {
		return Failure(http.StatusBadRequest, "Pet ID is required")
	}
	if q, ok := number(data["quantity"]); !ok || q <= 0 {
		return Failure(http.StatusBadRequest, "Quantity must be greater than 0")
	}
	shipDate := data["shipDate"]
	if !truthy(shipDate) {
		shipDate = b.gen.Datetime(b.gen.Number(1, 7))
	}
	return Success(map[string]any{
		"id":       b.gen.Number(10001, 20000),
		"petId":    data["petId"],
		"quantity": data["quantity"],
		"shipDate": shipDate,
		"status":   model.OrderPlaced,
		"complete": false,
	})
}

// orderID parses the orderId parameter, answering the shared 400/404 cases.
func orderID(c Call) (int64, *Result) {
	id, ok := parseInt(c.Param("orderId"))
	if !ok {
		r := Failure(http.StatusBadRequest, "Invalid order ID")
		return 0, &r
	}
	if id == 404 {
		r := Failure(http.StatusNotFound, "Order not found")
		return 0, &r
	}
	return id, nil
}

func (b *Backend) getOrder(_ context.Context, c Call) Result {
	id, fail := orderID(c)
	if fail != nil {
		return *fail
	}
	if id < 1 || id > 10 {
		return Failure(http.StatusBadRequest, "Invalid ID supplied")
	}
	return Success(b.gen.Order(id, ""))
}

func (b *Backend) deleteOrder(_ context.Context, c Call) Result {
	id, fail := orderID(c)
	if fail != nil {
		return *fail
	}
	if id < 1 {
		return Failure(http.StatusBadRequest, "Invalid ID supplied")
	}
	return Success(model.Status{Code: 200, Message: fmt.Sprintf("Order %d deleted successfully", id)})
}
