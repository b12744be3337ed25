package models

// SocialLink is one (platform, URL) pair from the bio.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Bio is the singleton profile document.
type Bio struct {
	ID           string       `json:"_id"`
	Type         string       `json:"_type"`
	Name         string       `json:"name"`
	Tagline      string       `json:"tagline"`
	Description  string       `json:"description"`
	ProfileImage *ImageRef    `json:"profileImage,omitempty"`
	Email        string       `json:"email"`
	CVFile       *FileRef     `json:"cvFile,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks"`
}

func (b Bio) Validate() error {
	if b.ID == "" {
		return ErrMissingID
	}
	return nil
}
