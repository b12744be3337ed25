package models

import "strings"

// Reference points at an asset document in the content store.
type Reference struct {
	Ref  string `json:"_ref"`
	Type string `json:"_type,omitempty"`
}

// ImageRef is an opaque image field. Only the asset reference matters for URL building.
type ImageRef struct {
	Type  string    `json:"_type,omitempty"`
	Asset Reference `json:"asset"`
}

// IsZero reports whether the field carries no usable asset reference.
func (i *ImageRef) IsZero() bool {
	return i == nil || strings.TrimSpace(i.Asset.Ref) == ""
}

// FileRef is an opaque file field (e.g. a CV upload).
type FileRef struct {
	Type  string    `json:"_type,omitempty"`
	Asset Reference `json:"asset"`
}

func (f *FileRef) IsZero() bool {
	return f == nil || strings.TrimSpace(f.Asset.Ref) == ""
}
