// Package views embeds the page templates and the landing page content.
package views

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var FS embed.FS

type Slide struct {
	Title    string
	Subtitle string
	Image    string
	Link     string
}

type Service struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

func Slides() []Slide {
	return []Slide{
		{Title: "Professional Advertising Solutions", Subtitle: "Eye-catching billboards and signage for maximum impact", Image: "/professional-advertising-billboard-installation-go.jpg", Link: "#quote"},
		{Title: "Stunning Neon Signs", Subtitle: "Custom neon lighting that brings your brand to life", Image: "/neon-sign-workshop-glowing-tubes-orange-smoke-cine.jpg", Link: "#quote"},
		{Title: "Illuminated Lightboxes", Subtitle: "Modern lightbox solutions for retail and corporate spaces", Image: "/illuminated-lightbox-sign-storefront-warm-orange-g.jpg", Link: "#quote"},
		{Title: "Custom T-Shirt Printing", Subtitle: "High-quality apparel printing with vibrant colors", Image: "/person-wearing-custom-printed-orange-tshirt-bold-l.jpg", Link: "#configurator"},
		{Title: "Premium Mug Printing", Subtitle: "Personalized mugs perfect for gifts and branding", Image: "/white-ceramic-mug-orange-logo-print-studio-lightin.jpg", Link: "#configurator"},
		{Title: "Custom Merchandise", Subtitle: "Complete gift shop solutions with branded items", Image: "/flatlay-assorted-printed-gifts-notebook-keychain-m.jpg", Link: "/shop"},
	}
}

func Services() []Service {
	return []Service{
		{ID: "advertising", Name: "Advertising", Description: "Professional billboard and signage solutions for maximum visibility", Icon: "📢"},
		{ID: "neon", Name: "Neon Lights", Description: "Custom neon signs that make your brand glow", Icon: "✨"},
		{ID: "lightbox", Name: "Lightbox", Description: "Illuminated lightbox signs for retail and corporate spaces", Icon: "💡"},
		{ID: "tshirt", Name: "T-Shirt Printing", Description: "High-quality custom t-shirt printing with vibrant colors", Icon: "👕"},
		{ID: "mug", Name: "Mug Printing", Description: "Personalized ceramic mugs perfect for gifts and branding", Icon: "☕"},
		{ID: "gifts", Name: "Gift Shop", Description: "Complete merchandise solutions with branded items", Icon: "🎁"},
	}
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}

// Parse loads every embedded page template.
func Parse() (*template.Template, error) {
	return template.New("layout").Funcs(funcs).ParseFS(FS, "*.html")
}
