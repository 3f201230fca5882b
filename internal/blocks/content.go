package blocks

import (
	"encoding/json"
	"fmt"
)

// Typed content variants, one per registered type. Stored content stays a
// JSON-like map so unknown keys survive round trips; renderers decode the
// resolved language slice into the variant they need.

type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

type FeatureItem struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type FeaturesContent struct {
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	Features []FeatureItem `json:"features"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Quote   string `json:"quote"`
	Avatar  string `json:"avatar,omitempty"`
	Rating  int    `json:"rating,omitempty"`
}

type TestimonialsContent struct {
	Title        string        `json:"title,omitempty"`
	Testimonials []Testimonial `json:"testimonials"`
}

type CTAContent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ButtonText  string `json:"buttonText,omitempty"`
	ButtonLink  string `json:"buttonLink,omitempty"`
}

// TextContent carries a Markdown body.
type TextContent struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

type ImageContent struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type VideoContent struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Poster string `json:"poster,omitempty"`
}

type Stat struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Suffix string `json:"suffix,omitempty"`
}

type StatsContent struct {
	Title string `json:"title,omitempty"`
	Stats []Stat `json:"stats"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Photo string `json:"photo,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type TeamContent struct {
	Title   string       `json:"title,omitempty"`
	Members []TeamMember `json:"members"`
}

type Logo struct {
	Name string `json:"name"`
	Src  string `json:"src"`
	URL  string `json:"url,omitempty"`
}

type LogosContent struct {
	Title string `json:"title,omitempty"`
	Logos []Logo `json:"logos"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQContent struct {
	Title string    `json:"title,omitempty"`
	Items []FAQItem `json:"items"`
}

type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

type FormContent struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	SubmitText  string      `json:"submitText,omitempty"`
	Fields      []FormField `json:"fields"`
}

type ServiceItem struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

type ServicesContent struct {
	Title    string        `json:"title,omitempty"`
	Services []ServiceItem `json:"services"`
}

type PricingPlan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features,omitempty"`
	CTAText     string   `json:"ctaText,omitempty"`
	CTALink     string   `json:"ctaLink,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

type PricingContent struct {
	Title string        `json:"title,omitempty"`
	Plans []PricingPlan `json:"plans"`
}

type SpacerContent struct{}

type CountdownTimerContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	EndDate     string `json:"endDate"`
	ExpiredText string `json:"expiredText,omitempty"`
}

type ComparisonRow struct {
	Feature string   `json:"feature"`
	Values  []string `json:"values"`
}

type PricingComparisonContent struct {
	Title string          `json:"title,omitempty"`
	Plans []string        `json:"plans"`
	Rows  []ComparisonRow `json:"rows"`
}

type GuaranteeContent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Days        int    `json:"days,omitempty"`
}

type VideoTestimonialItem struct {
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	VideoURL  string `json:"videoUrl"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Quote     string `json:"quote,omitempty"`
}

type VideoTestimonialContent struct {
	Title  string                 `json:"title,omitempty"`
	Videos []VideoTestimonialItem `json:"videos"`
}

// Decode converts a resolved payload into the typed variant T.
func Decode[T any](payload map[string]any) (T, error) {
	var out T
	if len(payload) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("blocks: encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("blocks: decode %T: %w", out, err)
	}
	return out, nil
}

// Encode converts a typed variant back into a JSON-like payload map.
func Encode(value any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %T: %w", value, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("blocks: normalize %T: %w", value, err)
	}
	return out, nil
}

func variantDecoder[T any]() func(map[string]any) (any, error) {
	return func(payload map[string]any) (any, error) {
		return Decode[T](payload)
	}
}

func mustEncode(value any) map[string]any {
	out, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return out
}
