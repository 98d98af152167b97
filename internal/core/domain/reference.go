package domain

// Category is a trade used to tag artisans and applications.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameAr    string `json:"name_ar,omitempty"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon,omitempty"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// City is a Moroccan city artisans operate in.
type City struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NameAr   string `json:"name_ar,omitempty"`
	Region   string `json:"region,omitempty"`
	IsActive bool   `json:"is_active"`
}
