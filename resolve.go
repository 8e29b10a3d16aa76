// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/aibor/inject")

// Resolve validates the given file and returns its payload.
//
// The index is the position of the file in its list and is only used for
// error messages. If the content is a [Producer] it is called exactly once.
// Text payloads are returned as their bytes.
//
// It returns a [ConfigurationError] if the file or any of its required fields
// is missing, a [ProducerError] if the producer fails, and an
// [UnsupportedContentTypeError] if the content resolves to an unsupported
// type.
func Resolve(ctx context.Context, index int, file *VirtualFile) ([]byte, error) {
	err := validate(index, file)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "inject.resolve", trace.WithAttributes(
		attribute.String("file.name", file.Name),
		attribute.Int("file.index", index),
	))
	defer span.End()

	payload, err := resolve(ctx, index, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(attribute.Int("file.size", len(payload)))

	return payload, nil
}

func validate(index int, file *VirtualFile) error {
	if file == nil {
		return &ConfigurationError{Index: index, Err: ErrMissingFile}
	}

	if file.Name == "" || file.Content == nil || !file.Content.present() {
		return &ConfigurationError{
			Index: index,
			Name:  file.Name,
			Err:   ErrMissingField,
		}
	}

	return nil
}

func resolve(ctx context.Context, index int, file *VirtualFile) ([]byte, error) {
	var value any = file.Content

	if producer, ok := file.Content.(Producer); ok {
		var err error

		value, err = producer(ctx, file)
		if err != nil {
			return nil, &ProducerError{Index: index, Name: file.Name, Err: err}
		}
	}

	return normalize(file.Name, value)
}

// normalize converts the given resolved value into a payload.
func normalize(name string, value any) ([]byte, error) {
	switch v := value.(type) {
	case Lines:
		return []byte(v.String()), nil
	case []string:
		return []byte(strings.Join(v, "\n")), nil
	case Text:
		return []byte(v), nil
	case string:
		return []byte(v), nil
	case Bytes:
		return v, nil
	case []byte:
		return v, nil
	default:
		return nil, &UnsupportedContentTypeError{
			Name: name,
			Type: fmt.Sprintf("%T", value),
		}
	}
}
