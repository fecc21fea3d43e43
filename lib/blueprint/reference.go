// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/dealer426/eknova/lib/environment"
)

// Kind says where a blueprint comes from.
type Kind int

const (
	KindFile Kind = iota
	KindMarketplace
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindMarketplace:
		return "marketplace"
	case KindURL:
		return "url"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrInvalidReference is wrapped by every ParseReference error.
var ErrInvalidReference = errors.New("invalid blueprint reference")

// Reference is a parsed blueprint reference.
type Reference struct {
	Kind Kind

	// Raw is the reference as the user wrote it.
	Raw string

	// Owner and Name are set for marketplace references.
	Owner string
	Name  string

	// URL is set for URL references.
	URL *url.URL

	// Path is set for file references.
	Path string
}

func (r Reference) String() string { return r.Raw }

// ParseReference classifies raw as a marketplace, URL or file
// reference.
func ParseReference(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, fmt.Errorf("%w: reference is empty", ErrInvalidReference)
	}

	switch {
	case strings.HasPrefix(raw, "@"):
		owner, name, found := strings.Cut(raw[1:], "/")
		if !found || owner == "" || name == "" || strings.Contains(name, "/") {
			return Reference{}, fmt.Errorf("%w: %q is not of the form @owner/name", ErrInvalidReference, raw)
		}
		return Reference{Kind: KindMarketplace, Raw: raw, Owner: owner, Name: name}, nil

	case hasHTTPScheme(raw):
		parsed, err := url.Parse(raw)
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		if parsed.Host == "" {
			return Reference{}, fmt.Errorf("%w: %q has no host", ErrInvalidReference, raw)
		}
		return Reference{Kind: KindURL, Raw: raw, URL: parsed}, nil

	default:
		return Reference{Kind: KindFile, Raw: raw, Path: raw}, nil
	}
}

func hasHTTPScheme(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DefaultEnvironmentName derives an environment name from the
// reference: the marketplace name, or the base name of the file or URL
// path with its extension removed, mapped onto the environment name
// alphabet. The result is empty when nothing usable remains.
func (r Reference) DefaultEnvironmentName() string {
	var base string
	switch r.Kind {
	case KindMarketplace:
		base = r.Name
	case KindURL:
		base = path.Base(strings.TrimSuffix(r.URL.Path, "/"))
		if base == "." || base == "/" {
			base = r.URL.Hostname()
		}
	default:
		base = filepath.Base(filepath.FromSlash(r.Path))
	}
	return environment.SanitizeName(trimExtensions(base))
}

// trimExtensions removes blueprint file extensions, including double
// ones like ".blueprint.yaml".
func trimExtensions(name string) string {
	for {
		extension := path.Ext(name)
		switch strings.ToLower(extension) {
		case ".yaml", ".yml", ".json", ".jsonc", ".blueprint":
			name = strings.TrimSuffix(name, extension)
		default:
			return name
		}
	}
}
