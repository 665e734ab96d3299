package services

import (
	"context"
	"io"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/resource"
)

// Documents manages uploaded files.
type Documents struct {
	client *httpclient.Client
	items  Collection[Document]
}

// NewDocuments creates the document call group.
func NewDocuments(client *httpclient.Client) *Documents {
	return &Documents{client: client, items: NewCollection[Document](client, endpoints.Documents)}
}

// Upload sends r as the multipart "file" field. fields carry extra form
// values such as the record the document is attached to.
func (s *Documents) Upload(ctx context.Context, name, contentType string, r io.Reader, fields map[string]string) (Document, error) {
	file := httpclient.FileField{FileName: name, ContentType: contentType, Reader: r}
	return data(httpclient.Upload[Document](ctx, s.client, endpoints.DocumentsUpload, file, fields))
}

// List fetches one page of documents.
func (s *Documents) List(ctx context.Context, p resource.PageParams, filters map[string]string) (resource.Envelope[Document], error) {
	return s.items.List(ctx, p, filters)
}

// Pages returns a page function for resource.NewPaginated.
func (s *Documents) Pages(filters map[string]string) resource.PageFunc[Document] {
	return s.items.Pages(filters)
}

// Delete removes a document.
func (s *Documents) Delete(ctx context.Context, id ID) error {
	return s.items.Delete(ctx, id)
}
