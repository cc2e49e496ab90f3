package model

import "strings"

// Recipe is the wire and in-memory representation of a single dish.
// JSON keys match what the mobile client and the recipe service exchange.
type Recipe struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURI    string `json:"imageUri"`
}

// SameDish reports whether two recipes describe the same dish regardless of
// where they came from. Search results carry externally-assigned ids, so
// sameness is decided by name and description rather than by id.
func (r Recipe) SameDish(other Recipe) bool {
	return r.Name == other.Name && r.Description == other.Description
}

// IsRemoteRef reports whether an image reference already points at a remote
// URL, as opposed to a device-local file or content handle.
func IsRemoteRef(imageRef string) bool {
	ref := strings.ToLower(imageRef)
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
