// Package sitecontent loads the static copy of the public site: hero, biography
// timeline, social links and contact intro.
package sitecontent

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the document looked up inside an override directory.
const FileName = "site.yaml"

const dateLayout = "2006-01-02"

//go:embed default.yaml
var defaultDocument []byte

// ErrInvalid reports a document that parsed but is missing required copy.
var ErrInvalid = errors.New("sitecontent: invalid document")

// Site is the parsed content document.
type Site struct {
	Name     string
	Tagline  string
	Person   Person
	Hero     Hero
	Timeline []Milestone
	Social   []Link
	Contact  Contact
}

// Person describes the candidate.
type Person struct {
	Name     string
	Role     string
	Portrait string
	Bio      string
}

// Hero is the landing page banner.
type Hero struct {
	Headline string
	Subhead  string
	Image    string
	CTA      Link
}

// Milestone is one biography entry.
type Milestone struct {
	Date  time.Time
	Title string
	Body  string
}

// Link is a labelled URL.
type Link struct {
	Label string
	Href  string
}

// Contact holds the copy shown above the contact form.
type Contact struct {
	Intro string
	Email string
}

type document struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Person  struct {
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		Portrait string `yaml:"portrait"`
		Bio      string `yaml:"bio"`
	} `yaml:"person"`
	Hero struct {
		Headline string       `yaml:"headline"`
		Subhead  string       `yaml:"subhead"`
		Image    string       `yaml:"image"`
		CTA      linkDocument `yaml:"cta"`
	} `yaml:"hero"`
	Timeline []struct {
		Date  string `yaml:"date"`
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"timeline"`
	Social  []linkDocument `yaml:"social"`
	Contact struct {
		Intro string `yaml:"intro"`
		Email string `yaml:"email"`
	} `yaml:"contact"`
}

type linkDocument struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Default returns the embedded document.
func Default() (*Site, error) {
	return Parse(defaultDocument)
}

// Parse decodes a YAML document. Timeline entries are returned oldest first.
func Parse(data []byte) (*Site, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sitecontent: decode: %w", err)
	}

	site := &Site{
		Name:    strings.TrimSpace(doc.Name),
		Tagline: strings.TrimSpace(doc.Tagline),
		Person: Person{
			Name:     strings.TrimSpace(doc.Person.Name),
			Role:     strings.TrimSpace(doc.Person.Role),
			Portrait: strings.TrimSpace(doc.Person.Portrait),
			Bio:      strings.TrimSpace(doc.Person.Bio),
		},
		Hero: Hero{
			Headline: strings.TrimSpace(doc.Hero.Headline),
			Subhead:  strings.TrimSpace(doc.Hero.Subhead),
			Image:    strings.TrimSpace(doc.Hero.Image),
			CTA:      doc.Hero.CTA.link(),
		},
		Contact: Contact{
			Intro: strings.TrimSpace(doc.Contact.Intro),
			Email: strings.TrimSpace(doc.Contact.Email),
		},
	}

	var missing []string
	if site.Name == "" {
		missing = append(missing, "name")
	}
	if site.Person.Name == "" {
		missing = append(missing, "person.name")
	}
	if site.Hero.Headline == "" {
		missing = append(missing, "hero.headline")
	}

	for i, entry := range doc.Timeline {
		date, err := time.Parse(dateLayout, strings.TrimSpace(entry.Date))
		if err != nil {
			missing = append(missing, fmt.Sprintf("timeline[%d].date", i))
			continue
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			missing = append(missing, fmt.Sprintf("timeline[%d].title", i))
			continue
		}
		site.Timeline = append(site.Timeline, Milestone{Date: date, Title: title, Body: strings.TrimSpace(entry.Body)})
	}
	sort.SliceStable(site.Timeline, func(i, j int) bool {
		return site.Timeline[i].Date.Before(site.Timeline[j].Date)
	})

	for _, l := range doc.Social {
		if link := l.link(); link.Href != "" {
			site.Social = append(site.Social, link)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(missing, ", "))
	}
	return site, nil
}

func (l linkDocument) link() Link {
	link := Link{Label: strings.TrimSpace(l.Label), Href: strings.TrimSpace(l.Href)}
	if link.Label == "" {
		link.Label = link.Href
	}
	return link
}
