package domain

type ProductType string

const (
	ProductTShirt ProductType = "tshirt"
	ProductMug    ProductType = "mug"
)

func (t ProductType) Valid() bool {
	return t == ProductTShirt || t == ProductMug
}

// Label is the human name used in subjects and previews.
func (t ProductType) Label() string {
	if t == ProductMug {
		return "Mug"
	}
	return "T-Shirt"
}

type DesignStyle string

const (
	DesignLogo    DesignStyle = "logo"
	DesignText    DesignStyle = "text"
	DesignPattern DesignStyle = "pattern"
)

func (s DesignStyle) Valid() bool {
	switch s {
	case DesignLogo, DesignText, DesignPattern:
		return true
	}
	return false
}

type ProductDesignConfig struct {
	ProductType ProductType `json:"type"`
	Color       string      `json:"color"`
	Text        string      `json:"text"`
	DesignStyle DesignStyle `json:"design"`
}

// DesignPatch carries a partial update; nil fields are left untouched.
type DesignPatch struct {
	ProductType *ProductType `json:"type,omitempty"`
	Color       *string      `json:"color,omitempty"`
	Text        *string      `json:"text,omitempty"`
	DesignStyle *DesignStyle `json:"design,omitempty"`
}

// Artifact is a file produced for local download.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}
