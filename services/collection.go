package services

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/resource"
	"github.com/Pranshu115/tatva/validation"
)

// Collection is the list/get/create/update/delete call group shared by
// every REST collection. T is the entity type.
type Collection[T any] struct {
	client *httpclient.Client
	path   endpoints.Collection
}

// NewCollection creates a call group for path.
func NewCollection[T any](client *httpclient.Client, path endpoints.Collection) Collection[T] {
	return Collection[T]{client: client, path: path}
}

// List fetches one page. filters are sent as query parameters.
func (c Collection[T]) List(ctx context.Context, p resource.PageParams, filters map[string]string) (resource.Envelope[T], error) {
	return list[T](ctx, c.client, c.path.List(), p, filters)
}

// Pages returns a page function for resource.NewPaginated.
func (c Collection[T]) Pages(filters map[string]string) resource.PageFunc[T] {
	return func(ctx context.Context, p resource.PageParams) (resource.Envelope[T], error) {
		return c.List(ctx, p, filters)
	}
}

// Get fetches one item.
func (c Collection[T]) Get(ctx context.Context, id ID) (T, error) {
	return data(httpclient.Get[T](ctx, c.client, c.path.Item(id.String())))
}

// Create validates in and posts it to the collection.
func (c Collection[T]) Create(ctx context.Context, in any) (T, error) {
	if err := validate(in); err != nil {
		var zero T
		return zero, err
	}
	return data(httpclient.Post[T](ctx, c.client, c.path.List(), in))
}

// Update validates in and replaces the item with it.
func (c Collection[T]) Update(ctx context.Context, id ID, in any) (T, error) {
	if err := validate(in); err != nil {
		var zero T
		return zero, err
	}
	return data(httpclient.Put[T](ctx, c.client, c.path.Item(id.String()), in))
}

// Delete removes the item.
func (c Collection[T]) Delete(ctx context.Context, id ID) error {
	_, err := httpclient.Delete[json.RawMessage](ctx, c.client, c.path.Item(id.String()))
	return err
}

// action posts body to a custom item action and decodes the updated item.
func (c Collection[T]) action(ctx context.Context, id ID, name string, body any) (T, error) {
	if body != nil {
		if err := validate(body); err != nil {
			var zero T
			return zero, err
		}
	}
	return data(httpclient.Post[T](ctx, c.client, c.path.Action(id.String(), name), body))
}

func list[T any](ctx context.Context, client *httpclient.Client, path string, p resource.PageParams, filters map[string]string) (resource.Envelope[T], error) {
	opts := []httpclient.RequestOption{httpclient.WithQuery(filters)}
	if p.Page > 0 {
		opts = append(opts, httpclient.WithPage(p.Page, p.Limit))
	}
	return data(httpclient.Get[resource.Envelope[T]](ctx, client, path, opts...))
}

func data[T any](resp *httpclient.TypedResponse[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Data, nil
}

// validate checks struct inputs before dispatch. A failure is reported as
// a construction error so it is classified like any other client-side
// failure.
func validate(in any) error {
	v := reflect.Indirect(reflect.ValueOf(in))
	if v.Kind() != reflect.Struct {
		return nil
	}
	if err := validation.Validate(in); err != nil {
		return httpclient.NewConstructionError(fmt.Errorf("invalid input: %w", err))
	}
	return nil
}
