package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

func valueBackend(r *http.Request) string {
	if val := r.FormValue("backend"); val != "" {
		return val
	}

	return r.URL.Query().Get("backend")
}

func valueModel(r *http.Request) string {
	return r.FormValue("model")
}

func valueLanguages(r *http.Request) []string {
	val := r.FormValue("languages")

	if val == "" {
		val = r.FormValue("lang")
	}

	if val == "" {
		return nil
	}

	var result []string

	for _, lang := range strings.Split(val, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			result = append(result, lang)
		}
	}

	return result
}

func readFile(r *http.Request) (*backend.File, error) {
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)

		if err != nil {
			return nil, err
		}

		return &backend.File{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		}, nil
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, backend.NewError(backend.ErrorInvalidRequest, "document content required")
	}

	return &backend.File{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}
