package render

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fixed portfolio presentation values.
const (
	PortfolioPrimaryColor    = "#3B82F6"
	PortfolioSecondaryColor  = "#1F2937"
	PortfolioBackgroundColor = "#FFFFFF"
	PortfolioTextColor       = "#1F2937"
	PortfolioFontFamily      = "Inter, system-ui, sans-serif"
	PortfolioBorderRadius    = 8
	PortfolioSpacing         = 24

	portfolioFooterText = "© {{year}} {{name}}. All rights reserved."
)

var serviceColors = []string{"#3B82F6", "#F59E0B", "#10B981"}

// PortfolioConfig is the page model produced for the legacy portfolio alias.
type PortfolioConfig struct {
	Meta    PortfolioMeta    `json:"meta"`
	Theme   PortfolioTheme   `json:"theme"`
	Layout  PortfolioLayout  `json:"layout"`
	Content PortfolioContent `json:"content"`
}

type PortfolioMeta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type PortfolioTheme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
	BorderRadius    int    `json:"borderRadius"`
	Spacing         int    `json:"spacing"`
}

type PortfolioLayout struct {
	Sections   []PortfolioSection `json:"sections"`
	Navigation PortfolioNav       `json:"navigation"`
	Footer     PortfolioFooter    `json:"footer"`
}

type PortfolioSection struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Order     int            `json:"order"`
	IsVisible bool           `json:"isVisible"`
	Config    map[string]any `json:"config"`
}

type PortfolioNav struct {
	IsVisible bool      `json:"isVisible"`
	Style     string    `json:"style"`
	Links     []NavLink `json:"links"`
}

type NavLink struct {
	Label      string `json:"label"`
	Href       string `json:"href"`
	IsExternal bool   `json:"isExternal"`
}

type PortfolioFooter struct {
	IsVisible   bool         `json:"isVisible"`
	Content     string       `json:"content"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

type PortfolioContent struct {
	Hero     PortfolioHero      `json:"hero"`
	Services []PortfolioService `json:"services"`
	About    PortfolioAbout     `json:"about"`
	Skills   PortfolioSkills    `json:"skills"`
	Projects PortfolioProjects  `json:"projects"`
	Contact  PortfolioContact   `json:"contact"`
}

type PortfolioHero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	CTAText     string `json:"ctaText"`
	CTALink     string `json:"ctaLink"`
}

type PortfolioService struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type PortfolioAbout struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Image   string   `json:"image,omitempty"`
	Skills  []string `json:"skills"`
}

type PortfolioSkills struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

type PortfolioProjects struct {
	Title    string   `json:"title"`
	Projects []string `json:"projects"`
}

type PortfolioContact struct {
	Title       string       `json:"title"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

// ConvertToPortfolio maps inspiration-site shaped data onto a portfolio
// configuration. Missing fields take generic defaults; it never fails.
func ConvertToPortfolio(data json.RawMessage) *PortfolioConfig {
	var src BusinessContent
	decodeLenient(data, &src)

	services := make([]PortfolioService, 0, len(src.Services.Items))
	for i, item := range src.Services.Items {
		services = append(services, PortfolioService{
			Name:        item.Title,
			Description: item.Description,
			Icon:        orDefault(item.Icon, "briefcase"),
			Color:       serviceColors[i%len(serviceColors)],
		})
	}

	return &PortfolioConfig{
		Meta: PortfolioMeta{
			Title:       orDefault(src.Hero.Title, "Professional Portfolio"),
			Description: orDefault(src.Hero.Subtitle, "Professional services"),
			Keywords:    []string{"portfolio", "professional", "services"},
		},
		Theme: PortfolioTheme{
			PrimaryColor:    PortfolioPrimaryColor,
			SecondaryColor:  PortfolioSecondaryColor,
			BackgroundColor: PortfolioBackgroundColor,
			TextColor:       PortfolioTextColor,
			FontFamily:      PortfolioFontFamily,
			BorderRadius:    PortfolioBorderRadius,
			Spacing:         PortfolioSpacing,
		},
		Layout: PortfolioLayout{
			Sections: []PortfolioSection{
				{ID: "hero", Type: "hero", Order: 1, IsVisible: true, Config: map[string]any{"style": "hero-inspiration", "alignment": "left", "showCTA": true}},
				{ID: "services", Type: "services", Order: 2, IsVisible: true, Config: map[string]any{"layout": "grid", "columns": 3, "showIcons": true}},
				{ID: "about", Type: "about", Order: 3, IsVisible: true, Config: map[string]any{"layout": "split", "showImage": true}},
				{ID: "contact", Type: "contact", Order: 4, IsVisible: true, Config: map[string]any{"showForm": true, "showSocial": true}},
				{ID: "footer", Type: "footer", Order: 5, IsVisible: true, Config: map[string]any{"showCopyright": true, "showSocial": true}},
			},
			Navigation: PortfolioNav{
				IsVisible: true,
				Style:     "minimal",
				Links: []NavLink{
					{Label: "Home", Href: "#hero"},
					{Label: "Services", Href: "#services"},
					{Label: "About", Href: "#about"},
					{Label: "Contact", Href: "#contact"},
				},
			},
			Footer: PortfolioFooter{IsVisible: true, Content: portfolioFooterText, SocialLinks: []SocialLink{}},
		},
		Content: PortfolioContent{
			Hero: PortfolioHero{
				Title:       orDefault(src.Hero.Title, "Professional Services"),
				Subtitle:    orDefault(src.Hero.Subtitle, "Expert solutions for your needs"),
				Description: orDefault(src.About.Description, "Professional services with years of experience"),
				CTAText:     orDefault(src.Hero.CTAText, "Get In Touch"),
				CTALink:     "#contact",
			},
			Services: services,
			About: PortfolioAbout{
				Title:   orDefault(src.About.Title, "About Me"),
				Content: orDefault(src.About.Description, "Professional with years of experience"),
				Image:   src.About.Image,
				Skills:  []string{},
			},
			Skills:   PortfolioSkills{Title: "Skills", Skills: []string{}},
			Projects: PortfolioProjects{Title: "Projects", Projects: []string{}},
			Contact: PortfolioContact{
				Title:       orDefault(src.Contact.Title, "Let's Work Together"),
				Email:       src.Contact.Email,
				Phone:       src.Contact.Phone,
				Location:    src.Contact.Address,
				SocialLinks: []SocialLink{},
			},
		},
	}
}

// FooterText expands the footer placeholders.
func (c *PortfolioConfig) FooterText(year int) string {
	r := strings.NewReplacer("{{year}}", strconv.Itoa(year), "{{name}}", c.Meta.Title)
	return r.Replace(c.Layout.Footer.Content)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
