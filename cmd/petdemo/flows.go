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

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/classify"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/model"
	"dirpx.dev/apiflow/nav"
)

const sampleOrderID = 5

// purchase browses available pets and orders the first one.
func (a *app) purchase(ctx context.Context) error {
	if err := a.router.Push(ctx, "pets"); err != nil {
		return err
	}
	pets, err := a.api.Pet.FindByStatus(ctx)
	if err != nil {
		return err
	}
	if len(pets) == 0 {
		return fmt.Errorf("%w: no available pets", errUnexpected)
	}
	a.printf("found %d available pets\n", len(pets))

	pet, err := a.api.Pet.Get(ctx, pets[0].ID)
	if err != nil {
		return err
	}
	a.printf("pet %d: %s (%s)\n", pet.ID, pet.Name, pet.Category.Name)

	order, err := a.api.Store.PlaceOrder(ctx, model.Order{PetID: pet.ID, Quantity: 1})
	if err != nil {
		return err
	}
	a.printf("order %d placed, status %s\n", order.ID, order.Status)

	if err := a.router.Push(ctx, "orders"); err != nil {
		return err
	}
	// The backend only keeps ids 1..10 for lookups.
	got, err := a.api.Store.GetOrder(ctx, sampleOrderID)
	if err != nil {
		return err
	}
	a.printf("order %d for pet %d is %s\n", got.ID, got.PetID, got.Status)

	inv, err := a.api.Store.Inventory(ctx)
	if err != nil {
		return err
	}
	a.printf("inventory: %v\n", inv)
	a.toast.Success("Order placed")
	return a.back(ctx)
}

// crud logs in, then creates, edits and removes a user and a pet.
func (a *app) crud(ctx context.Context) error {
	s, err := a.api.User.Login(ctx, "admin", "admin")
	if err != nil {
		return err
	}
	a.printf("logged in as %s, token expires in %ds\n", s.User.Username, s.ExpiresIn)
	if err := a.router.Push(ctx, "profile"); err != nil {
		return err
	}

	u, err := a.api.User.Create(ctx, model.User{Username: "demo", FirstName: "Demo", Email: "demo@example.com"})
	if err != nil {
		return err
	}
	a.printf("created user %s\n", u.Username)
	u.FirstName = "Renamed"
	if u, err = a.api.User.Update(ctx, u.Username, u); err != nil {
		return err
	}
	a.printf("updated user %s: %s\n", u.Username, u.FirstName)
	if _, err := a.api.User.Delete(ctx, u.Username); err != nil {
		return err
	}

	pet, err := a.api.Pet.Add(ctx, model.Pet{Name: "Rex", Status: model.PetAvailable})
	if err != nil {
		return err
	}
	a.printf("added pet %d\n", pet.ID)
	if pet, err = a.api.Pet.UpdateWithForm(ctx, pet.ID, "", model.PetSold); err != nil {
		return err
	}
	a.printf("pet %d is now %s\n", pet.ID, pet.Status)
	up, err := a.api.Pet.UploadImage(ctx, pet.ID, "front")
	if err != nil {
		return err
	}
	a.printf("uploaded image: %s\n", up.Message)
	if _, err := a.api.Pet.Delete(ctx, pet.ID); err != nil {
		return err
	}

	if _, err := a.api.User.Logout(ctx); err != nil {
		return err
	}
	a.printf("logged out\n")
	return a.back(ctx)
}

// back returns to the previous page, staying put on the first one.
func (a *app) back(ctx context.Context) error {
	if err := a.router.Back(ctx); err != nil && !errors.Is(err, nav.ErrNoHistory) {
		return err
	}
	return nil
}

// errorsFlow provokes a not-found, a bad id and an unauthorized reply. The
// last one expires the session and lands on the login page.
func (a *app) errorsFlow(ctx context.Context) error {
	cases := []struct {
		name string
		call func() error
		kind code.Code
	}{
		{"missing pet", func() error { _, err := a.api.Pet.Get(ctx, 404); return err }, code.ClientError},
		{"order out of range", func() error { _, err := a.api.Store.GetOrder(ctx, 999); return err }, code.ClientError},
		{"delete without key", func() error { _, err := a.guest.Pet.Delete(ctx, 1); return err }, code.Unauthorized},
	}
	for _, c := range cases {
		err := c.call()
		if !apiflow.IsKind(err, c.kind) {
			return fmt.Errorf("%w: %s returned %v", errUnexpected, c.name, err)
		}
		a.printf("%s: %v (toast %q)\n", c.name, err, a.toast.Get().Options.Msg)
	}

	if err := wait(ctx, classify.DefaultRedirectDelay+100*time.Millisecond); err != nil {
		return err
	}
	a.printf("now on %s\n", a.router.CurrentPath())
	return nil
}
