package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
)

// UploadFieldName is the form field every file upload is sent under.
const UploadFieldName = "file"

// MultipartBody represents a multipart/form-data request body.
// Pass it as the Body of a Request to send it with the right Content-Type.
type MultipartBody struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// Files are file upload fields.
	Files []FileField
}

// FileField represents a file to upload in a multipart request.
type FileField struct {
	// FieldName is the form field name. Upload forces it to "file".
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data for large files.
	Reader io.Reader
}

// Upload sends file as multipart/form-data with the single file field
// "file", plus any extra form fields, and decodes the JSON response.
func Upload[T any](ctx context.Context, c *Client, path string, file FileField, fields map[string]string, opts ...RequestOption) (*TypedResponse[T], error) {
	if file.FileName == "" {
		return nil, NewConstructionError(errors.New("upload: file name is required"))
	}
	if file.Data == nil && file.Reader == nil {
		return nil, NewConstructionError(errors.New("upload: file content is required"))
	}
	file.FieldName = UploadFieldName

	req := Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   &MultipartBody{Fields: fields, Files: []FileField{file}},
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeTyped[T](resp)
}

// encode buffers the form: fields in key order, then the files.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(m.Fields)) {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", k, err)
		}
	}
	for _, f := range m.Files {
		if err := writeFile(w, f); err != nil {
			return nil, "", fmt.Errorf("write file %q: %w", f.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f FileField) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(f.FieldName), escapeQuotes(f.FileName)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	var src io.Reader = bytes.NewReader(f.Data)
	if f.Data == nil && f.Reader != nil {
		src = f.Reader
	}
	_, err = io.Copy(part, src)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// escapeQuotes escapes quotes and backslashes in header parameters.
func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
