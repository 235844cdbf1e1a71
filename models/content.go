package models

import "time"

// Service is a treatment offered by the clinic.
type Service struct {
	ID          string    `json:"id" firestore:"-" bson:"_id,omitempty"`
	Title       string    `json:"title" firestore:"title" bson:"title" binding:"required"`
	Description string    `json:"description" firestore:"description" bson:"description" binding:"required"`
	Features    []string  `json:"features" firestore:"features" bson:"features"`
	ImageURL    string    `json:"imageUrl" firestore:"imageUrl" bson:"imageUrl"`
	Icon        string    `json:"icon" firestore:"icon" bson:"icon"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
}

func (s *Service) SetID(id string) { s.ID = id }

func (s *Service) Stamp(now time.Time, created bool) {
	if created {
		s.CreatedAt = now
	}
}

func (s *Service) Fields() map[string]any {
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"features":    s.Features,
		"imageUrl":    s.ImageURL,
		"icon":        s.Icon,
	}
}

// Testimonial is a patient review shown on the site.
type Testimonial struct {
	ID        string    `json:"id" firestore:"-" bson:"_id,omitempty"`
	Name      string    `json:"name" firestore:"name" bson:"name" binding:"required"`
	Rating    int       `json:"rating" firestore:"rating" bson:"rating" binding:"required,min=1,max=5"`
	Content   string    `json:"content" firestore:"content" bson:"content" binding:"required"`
	ImageURL  string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Location  string    `json:"location,omitempty" firestore:"location,omitempty" bson:"location,omitempty"`
	Service   string    `json:"service,omitempty" firestore:"service,omitempty" bson:"service,omitempty"`
	Date      string    `json:"date,omitempty" firestore:"date,omitempty" bson:"date,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
}

func (t *Testimonial) SetID(id string) { t.ID = id }

func (t *Testimonial) Stamp(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
}

func (t *Testimonial) Fields() map[string]any {
	return map[string]any{
		"name":     t.Name,
		"rating":   t.Rating,
		"content":  t.Content,
		"imageUrl": t.ImageURL,
		"location": t.Location,
		"service":  t.Service,
		"date":     t.Date,
	}
}

// BlogPost is an article in the clinic blog.
type BlogPost struct {
	ID        string    `json:"id" firestore:"-" bson:"_id,omitempty"`
	Title     string    `json:"title" firestore:"title" bson:"title" binding:"required"`
	Content   string    `json:"content" firestore:"content" bson:"content" binding:"required"`
	Excerpt   string    `json:"excerpt" firestore:"excerpt" bson:"excerpt"`
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl" bson:"imageUrl"`
	Author    string    `json:"author" firestore:"author" bson:"author" binding:"required"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

func (b *BlogPost) SetID(id string) { b.ID = id }

func (b *BlogPost) Stamp(now time.Time, created bool) {
	if created {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (b *BlogPost) Fields() map[string]any {
	return map[string]any{
		"title":     b.Title,
		"content":   b.Content,
		"excerpt":   b.Excerpt,
		"imageUrl":  b.ImageURL,
		"author":    b.Author,
		"updatedAt": b.UpdatedAt,
	}
}
