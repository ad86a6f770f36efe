// Package content defines the SiteContent document that backs every page of
// the site, plus the helpers that read, project, and walk it.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrContentInvalid is returned when the stored document is not a JSON object.
var ErrContentInvalid = errors.New("site content is not a valid JSON object")

// SiteContent is the single root document. Every section is optional.
type SiteContent struct {
	Home          *Home          `json:"home,omitempty"`
	Games         []Game         `json:"games,omitempty"`
	GGProductions *GGProductions `json:"ggProductions,omitempty"`
	About         *About         `json:"about,omitempty"`
	Contact       *Contact       `json:"contact,omitempty"`
	Policy        *Policy        `json:"policy,omitempty"`
}

// Link is a label/url pair used by nav items, footers and store links.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// NavItem is a header navigation entry.
type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// Home holds the landing page sections.
type Home struct {
	HeroText            string               `json:"heroText,omitempty"`
	Header              *Header              `json:"header,omitempty"`
	CuratedPartnerships *CuratedPartnerships `json:"curatedPartnerships,omitempty"`
	BottomBox           *BottomBox           `json:"bottomBox,omitempty"`
	// ProjectStack is where projects lived before they moved to Games.
	// Kept so that uploads referenced by old documents are still tracked.
	ProjectStack *ProjectStack `json:"projectStack,omitempty" editor:"legacy"`
}

// Header carries the navigation bar entries.
type Header struct {
	NavItems []NavItem `json:"navItems,omitempty"`
}

// CuratedPartnerships is the partnership teaser block on the home page.
type CuratedPartnerships struct {
	Description string `json:"description,omitempty"`
	LinkText    string `json:"linkText,omitempty"`
	LinkURL     string `json:"linkUrl,omitempty"`
}

// BottomBox is the footer block: rotating phrases, contact email and links.
type BottomBox struct {
	Phrases      []string `json:"phrases,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty"`
	FooterLinks  []Link   `json:"footerLinks,omitempty"`
}

// ProjectStack is the legacy home-page project list.
type ProjectStack struct {
	Projects []Game `json:"projects,omitempty"`
}

// Game describes one catalog entry. GG Productions projects share the shape.
type Game struct {
	Name        string   `json:"sub"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	DevelopedBy string   `json:"developedBy,omitempty"`
	FollowOn    []Link   `json:"followOn,omitempty"`
	WishlistOn  []Link   `json:"wishlistOn,omitempty"`
	AvailableOn []Link   `json:"availableOn,omitempty"`
	Screenshots []string `json:"screenshots,omitempty"`
	Video       string   `json:"video,omitempty"`
}

// Slug returns the URL slug for the entry.
func (g Game) Slug() string {
	return Slug(g.Name)
}

// Service is a GG Productions service offering.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// GGProductions holds the sub-brand page.
type GGProductions struct {
	HeroTagline   string    `json:"heroTagline,omitempty"`
	CTAButtonText string    `json:"ctaButtonText,omitempty"`
	IntroText     string    `json:"introText,omitempty"`
	Services      []Service `json:"services,omitempty"`
	Projects      []Game    `json:"projects,omitempty"`
	ClientLogos   []string  `json:"clientLogos,omitempty"`
	ClosingCTA    string    `json:"closingCta,omitempty"`
}

// Value is one entry of the about page values list.
type Value struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// About holds the about page.
type About struct {
	IntroText   []string `json:"introText,omitempty"`
	Values      []Value  `json:"values,omitempty"`
	CareersLink string   `json:"careersLink,omitempty"`
}

// Contact holds the pitch form copy and the company contact details.
type Contact struct {
	FormLine1Start   string `json:"formLine1Start,omitempty"`
	NamePlaceholder  string `json:"namePlaceholder,omitempty"`
	FormLine1End     string `json:"formLine1End,omitempty"`
	FormLine2Start   string `json:"formLine2Start,omitempty"`
	EmailPlaceholder string `json:"emailPlaceholder,omitempty"`
	FormLine2End     string `json:"formLine2End,omitempty"`
	ConsentText      string `json:"consentText,omitempty"`
	ButtonText       string `json:"buttonText,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address1         string `json:"address1,omitempty"`
	Address2         string `json:"address2,omitempty"`
	Address3         string `json:"address3,omitempty"`
}

// AddressLines returns the non-empty address lines in order.
func (c Contact) AddressLines() []string {
	lines := make([]string, 0, 3)
	for _, line := range []string{c.Address1, c.Address2, c.Address3} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// PolicyDocument is one named policy.
type PolicyDocument struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Policy holds the cookies and privacy policies.
type Policy struct {
	Cookies *PolicyDocument `json:"cookies,omitempty"`
	Privacy *PolicyDocument `json:"privacy,omitempty"`
}

// Parse decodes a stored document. An empty body or a JSON null yields an
// empty document; anything that is not a JSON object is rejected.
func Parse(data []byte) (*SiteContent, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &SiteContent{}, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrContentInvalid
	}

	var doc SiteContent
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentInvalid, err)
	}
	return &doc, nil
}

// Marshal encodes the document the way it is stored on disk.
func Marshal(doc *SiteContent) ([]byte, error) {
	if doc == nil {
		doc = &SiteContent{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal site content: %w", err)
	}
	return append(data, '\n'), nil
}

// Clone returns a deep copy of the document.
func (doc *SiteContent) Clone() *SiteContent {
	if doc == nil {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	var out SiteContent
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return &out
}
