package models

// Brand groups stores under one retail brand. Brands are discovered on
// import: an unknown brand name creates one.
type Brand struct {
	ID   int64
	Name string `validate:"required,min=2,max=255"`
}
