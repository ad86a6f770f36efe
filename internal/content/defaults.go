package content

import "time"

// DefaultHome is what the landing page shows when the document has no home section.
func DefaultHome() Home {
	return Home{
		HeroText: "Gattabara Games is a Software design and development company headquartered in Banglore.",
		Header: &Header{NavItems: []NavItem{
			{Label: "GATTABARA GAMES", Href: "/"},
			{Label: "Games", Href: "/games"},
			{Label: "Explore", Href: "/gg-productions"},
			{Label: "Pitch Us", Href: "/pitch-us"},
		}},
		CuratedPartnerships: &CuratedPartnerships{
			Description: "Gattabara Games curates its partnerships with developers worldwide.",
			LinkText:    "Learn more here →",
			LinkURL:     "#",
		},
		BottomBox: &BottomBox{
			Phrases:      []string{"Gattabara Games.", "crafted with conviction.", "inspired by culture."},
			ContactEmail: "contact@gattabaragames.com",
			FooterLinks: []Link{
				{Label: "Careers", URL: "#"},
				{Label: "Pitch", URL: "/pitch-us"},
				{Label: "Twitter", URL: "#"},
				{Label: "LinkedIn", URL: "#"},
				{Label: "Newsletter", URL: "#"},
			},
		},
	}
}

// DefaultGGProductions is the empty sub-brand page with its CTA label.
func DefaultGGProductions() GGProductions {
	return GGProductions{CTAButtonText: "Start a Conversation"}
}

// DefaultAbout is the seed about page.
func DefaultAbout() About {
	return About{
		IntroText: []string{
			"We are an AI-native software company.",
			"We spent a lot of time thinking about our values.",
		},
		Values: []Value{{
			Title:       "Curiosity, creativity and intellectual agility",
			Description: "Original thinking and collaboration are at the core.",
			Image:       "/assets/about-values.svg",
		}},
		CareersLink: "Check out our vacancies on our careers portal.",
	}
}

// DefaultContact is the seed pitch form copy and company details.
func DefaultContact() Contact {
	return Contact{
		FormLine1Start:   "Hi, my name is",
		NamePlaceholder:  "your name",
		FormLine1End:     "and I'm exploring a potential partnership with Gattabara Games.",
		FormLine2Start:   "Get in touch with me at",
		EmailPlaceholder: "your e-mail",
		FormLine2End:     ".",
		ConsentText:      "Hereby I authorise Gattabara Games to process the data I share for the purpose of replying to this pitch.",
		ButtonText:       "Send",
		CompanyName:      "Gattabara Games LLP",
		Email:            "info@gattabaragames.com",
		Phone:            "+91 9900114038",
	}
}

// DefaultPolicy returns placeholder policies dated on the given day.
func DefaultPolicy(now time.Time) Policy {
	day := now.Format("2006-01-02")
	return Policy{
		Cookies: &PolicyDocument{Title: "Cookies Policy", Content: "Content coming soon.", LastUpdated: day},
		Privacy: &PolicyDocument{Title: "Privacy Policy", Content: "Content coming soon.", LastUpdated: day},
	}
}

// Defaults is the document written by the seed command.
func Defaults(now time.Time) *SiteContent {
	home := DefaultHome()
	gg := DefaultGGProductions()
	about := DefaultAbout()
	contact := DefaultContact()
	policy := DefaultPolicy(now)
	return &SiteContent{
		Home:          &home,
		Games:         []Game{},
		GGProductions: &gg,
		About:         &about,
		Contact:       &contact,
		Policy:        &policy,
	}
}

// WithDefaults returns a copy of doc in which every absent section, home
// block and policy is taken from Defaults. Values already present are kept,
// and the games list is never filled.
func (doc *SiteContent) WithDefaults(now time.Time) *SiteContent {
	base := Defaults(now)
	out := doc.Clone()
	if out == nil {
		return base
	}

	if out.Home == nil {
		out.Home = base.Home
	} else {
		if out.Home.Header == nil {
			out.Home.Header = base.Home.Header
		}
		if out.Home.CuratedPartnerships == nil {
			out.Home.CuratedPartnerships = base.Home.CuratedPartnerships
		}
		if out.Home.BottomBox == nil {
			out.Home.BottomBox = base.Home.BottomBox
		}
	}
	if out.GGProductions == nil {
		out.GGProductions = base.GGProductions
	}
	if out.About == nil {
		out.About = base.About
	}
	if out.Contact == nil {
		out.Contact = base.Contact
	}
	if out.Policy == nil {
		out.Policy = base.Policy
	} else {
		if out.Policy.Cookies == nil {
			out.Policy.Cookies = base.Policy.Cookies
		}
		if out.Policy.Privacy == nil {
			out.Policy.Privacy = base.Policy.Privacy
		}
	}
	return out
}

// HomeOrDefault fills missing home blocks from DefaultHome.
func (doc *SiteContent) HomeOrDefault() Home {
	fallback := DefaultHome()
	if doc == nil || doc.Home == nil {
		return fallback
	}
	home := *doc.Home
	if home.HeroText == "" {
		home.HeroText = fallback.HeroText
	}
	if home.Header == nil || len(home.Header.NavItems) == 0 {
		home.Header = fallback.Header
	}
	if home.CuratedPartnerships == nil {
		home.CuratedPartnerships = fallback.CuratedPartnerships
	}
	if home.BottomBox == nil {
		home.BottomBox = fallback.BottomBox
	}
	return home
}

// GGProductionsOrDefault returns the sub-brand section or its default.
func (doc *SiteContent) GGProductionsOrDefault() GGProductions {
	if doc == nil || doc.GGProductions == nil {
		return DefaultGGProductions()
	}
	gg := *doc.GGProductions
	if gg.CTAButtonText == "" {
		gg.CTAButtonText = DefaultGGProductions().CTAButtonText
	}
	return gg
}

// AboutOrDefault returns the about section or its default.
func (doc *SiteContent) AboutOrDefault() About {
	if doc == nil || doc.About == nil {
		return DefaultAbout()
	}
	return *doc.About
}

// ContactOrDefault fills blank contact fields from DefaultContact.
func (doc *SiteContent) ContactOrDefault() Contact {
	fallback := DefaultContact()
	if doc == nil || doc.Contact == nil {
		return fallback
	}
	c := *doc.Contact
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.FormLine1Start, fallback.FormLine1Start)
	fill(&c.NamePlaceholder, fallback.NamePlaceholder)
	fill(&c.FormLine1End, fallback.FormLine1End)
	fill(&c.FormLine2Start, fallback.FormLine2Start)
	fill(&c.EmailPlaceholder, fallback.EmailPlaceholder)
	fill(&c.FormLine2End, fallback.FormLine2End)
	fill(&c.ConsentText, fallback.ConsentText)
	fill(&c.ButtonText, fallback.ButtonText)
	fill(&c.CompanyName, fallback.CompanyName)
	return c
}

// PolicyByName returns the named policy ("cookies" or "privacy"). The
// boolean is false when the document does not carry it.
func (doc *SiteContent) PolicyByName(name string) (PolicyDocument, bool) {
	if doc == nil || doc.Policy == nil {
		return PolicyDocument{}, false
	}
	var item *PolicyDocument
	switch name {
	case "cookies":
		item = doc.Policy.Cookies
	case "privacy":
		item = doc.Policy.Privacy
	}
	if item == nil {
		return PolicyDocument{}, false
	}
	return *item, true
}
