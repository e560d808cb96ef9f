package render

// BusinessContent is the data shape of the inspiration-site template. The
// portfolio alias reads the same shape.
type BusinessContent struct {
	Hero         BusinessHero    `json:"hero"`
	About        AboutSection    `json:"about"`
	Services     ServicesSection `json:"services"`
	WhyChooseUs  FeatureSection  `json:"whyChooseUs"`
	Testimonials Testimonials    `json:"testimonials"`
	Contact      BusinessContact `json:"contact"`
	Footer       BusinessFooter  `json:"footer"`
}

type BusinessHero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
}

type AboutSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Quote       string `json:"quote,omitempty"`
	Image       string `json:"image"`
}

type ServicesSection struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []ServiceItem `json:"items"`
}

type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type FeatureSection struct {
	Title string    `json:"title"`
	Items []Feature `json:"items"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Testimonials struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []Testimonial `json:"items"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
}

type BusinessContact struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type BusinessFooter struct {
	Tagline     string       `json:"tagline"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
}

// DJContent is the data shape of the dj-template template.
type DJContent struct {
	Hero    DJHero       `json:"hero"`
	About   AboutSection `json:"about"`
	Music   Music        `json:"music"`
	Events  Events       `json:"events"`
	Gallery Gallery      `json:"gallery"`
	Social  Social       `json:"social"`
	Contact DJContact    `json:"contact"`
}

type DJHero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
	BackgroundVideo string `json:"backgroundVideo"`
	BackgroundImage string `json:"backgroundImage"`
}

type Music struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tracks      []Track `json:"tracks"`
}

type Track struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	CoverImage  string `json:"coverImage"`
	SpotifyURL  string `json:"spotifyUrl"`
	ReleaseDate string `json:"releaseDate"`
	Duration    string `json:"duration"`
}

type Events struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	UpcomingEvents []Event `json:"upcomingEvents"`
}

type Event struct {
	Title     string `json:"title"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	TicketURL string `json:"ticketUrl"`
	Image     string `json:"image"`
}

type Gallery struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Media       []Media `json:"media"`
}

type Media struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Social struct {
	Title string       `json:"title"`
	Links []SocialLink `json:"links"`
}

type DJContact struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Email          string `json:"email"`
	BookingEmail   string `json:"bookingEmail"`
}
