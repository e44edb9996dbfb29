package models

import "time"

// Enquiry statuses.
const (
	EnquiryStatusNew       = "NEW"
	EnquiryStatusResponded = "RESPONDED"
)

// Notice is an announcement on the school notice board.
type Notice struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	IssuedBy      string    `db:"issued_by" json:"issued_by"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	ImagePublicID string    `db:"image_public_id" json:"-"`
	PublishedAt   time.Time `db:"published_at" json:"published_at"`
}

// CreateNoticeRequest describes a new notice. The optional image travels separately.
type CreateNoticeRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=150"`
	Description string `form:"description" json:"description" validate:"max=5000"`
	IssuedBy    string `form:"-" json:"-"`
}

// Enquiry is a message left by a visitor of the public site.
type Enquiry struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EnquiryFilter narrows enquiry listings.
type EnquiryFilter struct {
	Status   string
	Page     int
	PageSize int
}

// CreateEnquiryRequest is the public enquiry form.
type CreateEnquiryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Mobile  string `json:"mobile" validate:"omitempty,numeric,max=15"`
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"max=2000"`
}

// GalleryItem is one picture in the public gallery.
type GalleryItem struct {
	ID            int64     `db:"id" json:"id"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	ImagePublicID string    `db:"image_public_id" json:"-"`
	About         string    `db:"about" json:"about"`
	TakenOn       time.Time `db:"taken_on" json:"taken_on"`
}

// CreateGalleryItemRequest describes a gallery upload. The image travels separately.
// TakenOn defaults to the upload date.
type CreateGalleryItemRequest struct {
	About   string `form:"about" json:"about" validate:"max=70"`
	TakenOn string `form:"taken_on" json:"taken_on" validate:"omitempty,datetime=2006-01-02"`
}
