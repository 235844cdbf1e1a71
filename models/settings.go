package models

type SocialMedia struct {
	Facebook  string `json:"facebook" firestore:"facebook" bson:"facebook"`
	Instagram string `json:"instagram" firestore:"instagram" bson:"instagram"`
	Twitter   string `json:"twitter" firestore:"twitter" bson:"twitter"`
	Youtube   string `json:"youtube" firestore:"youtube" bson:"youtube"`
}

type SEOSettings struct {
	MetaTitle       string `json:"metaTitle" firestore:"metaTitle" bson:"metaTitle"`
	MetaDescription string `json:"metaDescription" firestore:"metaDescription" bson:"metaDescription"`
	Keywords        string `json:"keywords" firestore:"keywords" bson:"keywords"`
}

// SiteSettings is the single settings/site document.
type SiteSettings struct {
	SiteName        string      `json:"siteName" firestore:"siteName" bson:"siteName"`
	SiteDescription string      `json:"siteDescription" firestore:"siteDescription" bson:"siteDescription"`
	ContactPhone    string      `json:"contactPhone" firestore:"contactPhone" bson:"contactPhone"`
	ContactEmail    string      `json:"contactEmail" firestore:"contactEmail" bson:"contactEmail"`
	Address         string      `json:"address" firestore:"address" bson:"address"`
	EmergencyPhone  string      `json:"emergencyPhone" firestore:"emergencyPhone" bson:"emergencyPhone"`
	WorkingHours    string      `json:"workingHours" firestore:"workingHours" bson:"workingHours"`
	AboutText       string      `json:"aboutText" firestore:"aboutText" bson:"aboutText"`
	SocialMedia     SocialMedia `json:"socialMedia" firestore:"socialMedia" bson:"socialMedia"`
	SEO             SEOSettings `json:"seo" firestore:"seo" bson:"seo"`
}

// DefaultSiteSettings returns the settings served when nothing is stored.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:        "Dr. Basavaiah Ayurveda Hospital",
		SiteDescription: "Authentic Ayurvedic healing since 1938",
		ContactPhone:    "+91-891-123-4567",
		ContactEmail:    "info@basavaiahayurveda.com",
		Address:         "Venkataraju Nagar, Visakhapatnam, Andhra Pradesh",
		EmergencyPhone:  "+91-891-987-6543",
		WorkingHours:    "Mon-Sat: 8:00 AM - 8:00 PM, Sun: 9:00 AM - 6:00 PM",
		AboutText:       "Experience the power of authentic Ayurvedic healing at Dr. Basavaiah Ayurveda Hospital. Trusted by over 50,000 patients since 1938.",
		SEO: SEOSettings{
			MetaTitle:       "Dr. Basavaiah Ayurveda Hospital | Authentic Ayurvedic Treatment Since 1938",
			MetaDescription: "Experience authentic Ayurvedic healing at Dr. Basavaiah Ayurveda Hospital in Visakhapatnam. Trusted by 50,000+ patients since 1938.",
			Keywords:        "ayurveda hospital, ayurvedic treatment, natural healing, visakhapatnam, dr basavaiah",
		},
	}
}

// MergeOver fills every empty field of s from defaults.
func (s SiteSettings) MergeOver(defaults SiteSettings) SiteSettings {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return SiteSettings{
		SiteName:        pick(s.SiteName, defaults.SiteName),
		SiteDescription: pick(s.SiteDescription, defaults.SiteDescription),
		ContactPhone:    pick(s.ContactPhone, defaults.ContactPhone),
		ContactEmail:    pick(s.ContactEmail, defaults.ContactEmail),
		Address:         pick(s.Address, defaults.Address),
		EmergencyPhone:  pick(s.EmergencyPhone, defaults.EmergencyPhone),
		WorkingHours:    pick(s.WorkingHours, defaults.WorkingHours),
		AboutText:       pick(s.AboutText, defaults.AboutText),
		SocialMedia: SocialMedia{
			Facebook:  pick(s.SocialMedia.Facebook, defaults.SocialMedia.Facebook),
			Instagram: pick(s.SocialMedia.Instagram, defaults.SocialMedia.Instagram),
			Twitter:   pick(s.SocialMedia.Twitter, defaults.SocialMedia.Twitter),
			Youtube:   pick(s.SocialMedia.Youtube, defaults.SocialMedia.Youtube),
		},
		SEO: SEOSettings{
			MetaTitle:       pick(s.SEO.MetaTitle, defaults.SEO.MetaTitle),
			MetaDescription: pick(s.SEO.MetaDescription, defaults.SEO.MetaDescription),
			Keywords:        pick(s.SEO.Keywords, defaults.SEO.Keywords),
		},
	}
}
