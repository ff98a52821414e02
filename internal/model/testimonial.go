package model

// Testimonial is a patient review shown publicly and managed by admins.
type Testimonial struct {
	Base
	Name        string `db:"name" json:"name"`
	Address     string `db:"address" json:"address"`
	ServiceName string `db:"service_name" json:"serviceName"`
	Rating      int    `db:"rating" json:"rating"`
	Comment     string `db:"comment" json:"comment"`
	Date        string `db:"date" json:"date"`
	Image       string `db:"image" json:"image"`
}

type CreateTestimonialRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	ServiceName string `json:"serviceName"`
	Rating      int    `json:"rating" validate:"min=0,max=5"`
	Comment     string `json:"comment" validate:"required"`
	Date        string `json:"date"`
}
