package blocks

// Schema helpers for the built-in entries. Payloads stay open to extra keys so
// content written by newer editors survives older readers.

func objectSchema(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		items := make([]any, len(required))
		for i, name := range required {
			items[i] = name
		}
		schema["required"] = items
	}
	return schema
}

func stringProp() map[string]any  { return map[string]any{"type": "string"} }
func integerProp() map[string]any { return map[string]any{"type": "integer"} }
func booleanProp() map[string]any { return map[string]any{"type": "boolean"} }

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func builtinEntries() []Entry {
	return []Entry{
		{
			Type:        TypeHero,
			Label:       "Hero",
			Category:    CategoryLayout,
			Icon:        "layout-template",
			Description: "Full-width header with headline and call to action",
			DefaultContent: Content{BaseLanguage: mustEncode(HeroContent{
				Title:    "Build something remarkable",
				Subtitle: "Welcome",
				CTAText:  "Get started",
				CTALink:  "/contact",
			})},
			DefaultSettings: withCommon(Settings{"height": "lg", "overlay": true}),
			Schema: objectSchema([]string{"title"}, map[string]any{
				"title":           stringProp(),
				"subtitle":        stringProp(),
				"description":     stringProp(),
				"ctaText":         stringProp(),
				"ctaLink":         stringProp(),
				"backgroundImage": stringProp(),
			}),
			decode: variantDecoder[HeroContent](),
		},
		{
			Type:           TypeSpacer,
			Label:          "Spacer",
			Category:       CategoryLayout,
			Icon:           "separator-horizontal",
			Description:    "Vertical whitespace between sections",
			DefaultContent: Content{BaseLanguage: map[string]any{}},
			DefaultSettings: withCommon(Settings{
				SettingPadding:   "none",
				SettingAnimation: "none",
				"height":         "md",
			}),
			Schema: objectSchema(nil, map[string]any{}),
			decode: variantDecoder[SpacerContent](),
		},
		{
			Type:        TypeText,
			Label:       "Text",
			Category:    CategoryContent,
			Icon:        "type",
			Description: "Rich text section written in Markdown",
			DefaultContent: Content{BaseLanguage: mustEncode(TextContent{
				Title: "About us",
				Body:  "Tell your story here.",
			})},
			DefaultSettings: withCommon(Settings{SettingAlignment: "left", "maxWidth": "prose"}),
			Schema: objectSchema([]string{"body"}, map[string]any{
				"title": stringProp(),
				"body":  stringProp(),
			}),
			decode: variantDecoder[TextContent](),
		},
		{
			Type:        TypeFeatures,
			Label:       "Features",
			Category:    CategoryContent,
			Icon:        "grid",
			Description: "Grid of feature cards",
			DefaultContent: Content{BaseLanguage: mustEncode(FeaturesContent{
				Title: "Why choose us",
				Features: []FeatureItem{
					{Icon: "zap", Title: "Fast", Description: "Launch in days, not months."},
					{Icon: "shield", Title: "Reliable", Description: "Built on proven foundations."},
					{Icon: "heart", Title: "Friendly", Description: "A team that listens."},
				},
			})},
			DefaultSettings: withCommon(Settings{"columns": 3, "cardStyle": "glass"}),
			Schema: objectSchema([]string{"features"}, map[string]any{
				"title":    stringProp(),
				"subtitle": stringProp(),
				"features": arrayOf(objectSchema([]string{"title"}, map[string]any{
					"icon":        stringProp(),
					"title":       stringProp(),
					"description": stringProp(),
				})),
			}),
			decode: variantDecoder[FeaturesContent](),
		},
		{
			Type:        TypeFAQ,
			Label:       "FAQ",
			Category:    CategoryContent,
			Icon:        "help-circle",
			Description: "Frequently asked questions",
			DefaultContent: Content{BaseLanguage: mustEncode(FAQContent{
				Title: "Frequently asked questions",
				Items: []FAQItem{{Question: "How long does a project take?", Answer: "Most projects ship within four weeks."}},
			})},
			DefaultSettings: withCommon(Settings{"expandFirst": true}),
			Schema: objectSchema([]string{"items"}, map[string]any{
				"title": stringProp(),
				"items": arrayOf(objectSchema([]string{"question", "answer"}, map[string]any{
					"question": stringProp(),
					"answer":   stringProp(),
				})),
			}),
			decode: variantDecoder[FAQContent](),
		},
		{
			Type:        TypeTestimonials,
			Label:       "Testimonials",
			Category:    CategoryContent,
			Icon:        "quote",
			Description: "Customer quotes",
			DefaultContent: Content{BaseLanguage: mustEncode(TestimonialsContent{
				Title:        "What our clients say",
				Testimonials: []Testimonial{{Name: "Jane Doe", Role: "CEO", Company: "Acme", Quote: "A pleasure to work with.", Rating: 5}},
			})},
			DefaultSettings: withCommon(Settings{"layout": "carousel"}),
			Schema: objectSchema([]string{"testimonials"}, map[string]any{
				"title": stringProp(),
				"testimonials": arrayOf(objectSchema([]string{"name", "quote"}, map[string]any{
					"name":    stringProp(),
					"role":    stringProp(),
					"company": stringProp(),
					"quote":   stringProp(),
					"avatar":  stringProp(),
					"rating":  map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
				})),
			}),
			decode: variantDecoder[TestimonialsContent](),
		},
		{
			Type:        TypeStats,
			Label:       "Stats",
			Category:    CategoryContent,
			Icon:        "bar-chart",
			Description: "Key numbers",
			DefaultContent: Content{BaseLanguage: mustEncode(StatsContent{
				Stats: []Stat{
					{Value: "120", Suffix: "+", Label: "Projects"},
					{Value: "98", Suffix: "%", Label: "Happy clients"},
				},
			})},
			DefaultSettings: withCommon(Settings{"columns": 4}),
			Schema: objectSchema([]string{"stats"}, map[string]any{
				"title": stringProp(),
				"stats": arrayOf(objectSchema([]string{"value", "label"}, map[string]any{
					"value":  stringProp(),
					"label":  stringProp(),
					"suffix": stringProp(),
				})),
			}),
			decode: variantDecoder[StatsContent](),
		},
		{
			Type:        TypeTeam,
			Label:       "Team",
			Category:    CategoryContent,
			Icon:        "users",
			Description: "Team member cards",
			DefaultContent: Content{BaseLanguage: mustEncode(TeamContent{
				Title:   "Meet the team",
				Members: []TeamMember{{Name: "Alex Smith", Role: "Founder"}},
			})},
			DefaultSettings: withCommon(Settings{"columns": 3}),
			Schema: objectSchema([]string{"members"}, map[string]any{
				"title": stringProp(),
				"members": arrayOf(objectSchema([]string{"name"}, map[string]any{
					"name":  stringProp(),
					"role":  stringProp(),
					"photo": stringProp(),
					"bio":   stringProp(),
				})),
			}),
			decode: variantDecoder[TeamContent](),
		},
		{
			Type:        TypeImage,
			Label:       "Image",
			Category:    CategoryMedia,
			Icon:        "image",
			Description: "Single image with caption",
			DefaultContent: Content{BaseLanguage: mustEncode(ImageContent{
				Src: "/images/placeholder.jpg",
				Alt: "Placeholder image",
			})},
			DefaultSettings: withCommon(Settings{"rounded": true}),
			Schema: objectSchema([]string{"src"}, map[string]any{
				"src":     stringProp(),
				"alt":     stringProp(),
				"caption": stringProp(),
			}),
			decode: variantDecoder[ImageContent](),
		},
		{
			Type:        TypeVideo,
			Label:       "Video",
			Category:    CategoryMedia,
			Icon:        "video",
			Description: "Embedded video",
			DefaultContent: Content{BaseLanguage: mustEncode(VideoContent{
				URL:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
				Title: "Our story",
			})},
			DefaultSettings: withCommon(Settings{"autoplay": false, "aspectRatio": "16:9"}),
			Schema: objectSchema([]string{"url"}, map[string]any{
				"url":    stringProp(),
				"title":  stringProp(),
				"poster": stringProp(),
			}),
			decode: variantDecoder[VideoContent](),
		},
		{
			Type:        TypeLogos,
			Label:       "Logos",
			Category:    CategoryMedia,
			Icon:        "award",
			Description: "Client or partner logo strip",
			DefaultContent: Content{BaseLanguage: mustEncode(LogosContent{
				Title: "Trusted by",
				Logos: []Logo{{Name: "Acme", Src: "/images/logos/acme.svg"}},
			})},
			DefaultSettings: withCommon(Settings{"grayscale": true}),
			Schema: objectSchema([]string{"logos"}, map[string]any{
				"title": stringProp(),
				"logos": arrayOf(objectSchema([]string{"name", "src"}, map[string]any{
					"name": stringProp(),
					"src":  stringProp(),
					"url":  stringProp(),
				})),
			}),
			decode: variantDecoder[LogosContent](),
		},
		{
			Type:        TypeVideoTestimonial,
			Label:       "Video testimonials",
			Category:    CategoryMedia,
			Icon:        "play-circle",
			Description: "Customer stories on video",
			DefaultContent: Content{BaseLanguage: mustEncode(VideoTestimonialContent{
				Title:  "Hear from our clients",
				Videos: []VideoTestimonialItem{{Name: "Jane Doe", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ"}},
			})},
			DefaultSettings: withCommon(Settings{"columns": 2}),
			Schema: objectSchema([]string{"videos"}, map[string]any{
				"title": stringProp(),
				"videos": arrayOf(objectSchema([]string{"name", "videoUrl"}, map[string]any{
					"name":      stringProp(),
					"role":      stringProp(),
					"videoUrl":  stringProp(),
					"thumbnail": stringProp(),
					"quote":     stringProp(),
				})),
			}),
			decode: variantDecoder[VideoTestimonialContent](),
		},
		{
			Type:        TypeForm,
			Label:       "Form",
			Category:    CategoryForms,
			Icon:        "clipboard",
			Description: "Contact or lead form",
			DefaultContent: Content{BaseLanguage: mustEncode(FormContent{
				Title:      "Get in touch",
				SubmitText: "Send",
				Fields: []FormField{
					{Name: "name", Label: "Name", Type: "text", Required: true},
					{Name: "email", Label: "Email", Type: "email", Required: true},
					{Name: "message", Label: "Message", Type: "textarea"},
				},
			})},
			DefaultSettings: withCommon(Settings{"template": "contact"}),
			Schema: objectSchema([]string{"fields"}, map[string]any{
				"title":       stringProp(),
				"description": stringProp(),
				"submitText":  stringProp(),
				"fields": arrayOf(objectSchema([]string{"name", "type"}, map[string]any{
					"name":     stringProp(),
					"label":    stringProp(),
					"type":     map[string]any{"enum": []any{"text", "email", "tel", "textarea", "select", "checkbox"}},
					"required": booleanProp(),
				})),
			}),
			decode: variantDecoder[FormContent](),
		},
		{
			Type:        TypeCTA,
			Label:       "Call to action",
			Category:    CategoryBusiness,
			Icon:        "megaphone",
			Description: "Prominent action banner",
			DefaultContent: Content{BaseLanguage: mustEncode(CTAContent{
				Title:      "Ready to start?",
				ButtonText: "Book a call",
				ButtonLink: "/contact",
			})},
			DefaultSettings: withCommon(Settings{SettingBackground: "gradient"}),
			Schema: objectSchema([]string{"title"}, map[string]any{
				"title":       stringProp(),
				"description": stringProp(),
				"buttonText":  stringProp(),
				"buttonLink":  stringProp(),
			}),
			decode: variantDecoder[CTAContent](),
		},
		{
			Type:        TypeServices,
			Label:       "Services",
			Category:    CategoryBusiness,
			Icon:        "briefcase",
			Description: "Service offerings",
			DefaultContent: Content{BaseLanguage: mustEncode(ServicesContent{
				Title:    "What we do",
				Services: []ServiceItem{{Icon: "code", Title: "Web development"}, {Icon: "pen-tool", Title: "Design"}},
			})},
			DefaultSettings: withCommon(Settings{"columns": 3}),
			Schema: objectSchema([]string{"services"}, map[string]any{
				"title": stringProp(),
				"services": arrayOf(objectSchema([]string{"title"}, map[string]any{
					"icon":        stringProp(),
					"title":       stringProp(),
					"description": stringProp(),
					"link":        stringProp(),
				})),
			}),
			decode: variantDecoder[ServicesContent](),
		},
		{
			Type:        TypePricing,
			Label:       "Pricing",
			Category:    CategoryBusiness,
			Icon:        "tag",
			Description: "Pricing plans",
			DefaultContent: Content{BaseLanguage: mustEncode(PricingContent{
				Title: "Simple pricing",
				Plans: []PricingPlan{
					{Name: "Starter", Price: "$499", Period: "project", Features: []string{"Landing page"}},
					{Name: "Growth", Price: "$1,499", Period: "project", Features: []string{"Five pages", "CMS"}, Highlighted: true},
				},
			})},
			DefaultSettings: withCommon(Settings{"columns": 3, "highlightColor": "primary"}),
			Schema: objectSchema([]string{"plans"}, map[string]any{
				"title": stringProp(),
				"plans": arrayOf(objectSchema([]string{"name", "price"}, map[string]any{
					"name":        stringProp(),
					"price":       stringProp(),
					"period":      stringProp(),
					"features":    arrayOf(stringProp()),
					"ctaText":     stringProp(),
					"ctaLink":     stringProp(),
					"highlighted": booleanProp(),
				})),
			}),
			decode: variantDecoder[PricingContent](),
		},
		{
			Type:        TypePricingComparison,
			Label:       "Pricing comparison",
			Category:    CategoryBusiness,
			Icon:        "table",
			Description: "Feature matrix across plans",
			DefaultContent: Content{BaseLanguage: mustEncode(PricingComparisonContent{
				Title: "Compare plans",
				Plans: []string{"Starter", "Growth"},
				Rows:  []ComparisonRow{{Feature: "Pages", Values: []string{"1", "5"}}},
			})},
			DefaultSettings: withCommon(Settings{"layout": "table", "stickyHeader": true}),
			Schema: objectSchema([]string{"plans", "rows"}, map[string]any{
				"title": stringProp(),
				"plans": arrayOf(stringProp()),
				"rows": arrayOf(objectSchema([]string{"feature", "values"}, map[string]any{
					"feature": stringProp(),
					"values":  arrayOf(stringProp()),
				})),
			}),
			decode: variantDecoder[PricingComparisonContent](),
		},
		{
			Type:        TypeGuarantee,
			Label:       "Guarantee",
			Category:    CategoryBusiness,
			Icon:        "shield-check",
			Description: "Money-back or satisfaction guarantee",
			DefaultContent: Content{BaseLanguage: mustEncode(GuaranteeContent{
				Title:       "30-day guarantee",
				Description: "Not happy? Get your money back.",
				Days:        30,
			})},
			DefaultSettings: withCommon(Settings{"badgeStyle": "seal"}),
			Schema: objectSchema([]string{"title"}, map[string]any{
				"title":       stringProp(),
				"description": stringProp(),
				"badge":       stringProp(),
				"days":        integerProp(),
			}),
			decode: variantDecoder[GuaranteeContent](),
		},
		{
			Type:        TypeCountdownTimer,
			Label:       "Countdown timer",
			Category:    CategoryUtility,
			Icon:        "clock",
			Description: "Countdown to a launch or offer deadline",
			DefaultContent: Content{BaseLanguage: mustEncode(CountdownTimerContent{
				Title:       "Offer ends soon",
				EndDate:     "2030-01-01T00:00:00Z",
				ExpiredText: "This offer has ended",
			})},
			DefaultSettings: withCommon(Settings{"accentColor": "#f97316", "showSeconds": true}),
			Schema: objectSchema([]string{"endDate"}, map[string]any{
				"title":       stringProp(),
				"description": stringProp(),
				"endDate":     stringProp(),
				"expiredText": stringProp(),
			}),
			decode: variantDecoder[CountdownTimerContent](),
		},
	}
}
