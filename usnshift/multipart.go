package usnshift

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"railshift/models"
)

const (
	DataField     = "data"
	DocumentField = "documents"
)

// EncodeMultipart writes the request as JSON in a "data" part followed by
// one "documents" file part per upload.
func EncodeMultipart(req *models.USNShiftRequest, uploads []Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	data, err := json.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("usnshift: encode payload: %w", err)
	}
	if err := w.WriteField(DataField, string(data)); err != nil {
		return nil, "", err
	}
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, DocumentField, u.Name))
		ct := u.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(u.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// DecodeMultipart reads a body written by EncodeMultipart. maxMemory bounds
// the in-memory part of the parse.
func DecodeMultipart(r io.Reader, boundary string, maxMemory int64) (*models.USNShiftRequest, []Upload, error) {
	form, err := multipart.NewReader(r, boundary).ReadForm(maxMemory)
	if err != nil {
		return nil, nil, fmt.Errorf("usnshift: read multipart: %w", err)
	}
	defer form.RemoveAll()

	vals := form.Value[DataField]
	if len(vals) == 0 {
		return nil, nil, fmt.Errorf("usnshift: missing %q field", DataField)
	}
	var req models.USNShiftRequest
	if err := json.Unmarshal([]byte(vals[0]), &req); err != nil {
		return nil, nil, fmt.Errorf("usnshift: decode %q field: %w", DataField, err)
	}

	var uploads []Upload
	for _, fh := range form.File[DocumentField] {
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		uploads = append(uploads, Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return &req, uploads, nil
}
