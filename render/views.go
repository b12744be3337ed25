package render

import (
	"html/template"
	"strings"

	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/models"
)

// Image sizes requested from the asset CDN, per placement.
const (
	profileImageSize    = 200
	avatarImageSize     = 60
	homeCardWidth       = 400
	homeCardHeight      = 200
	listingCardWidth    = 600
	listingCardHeight   = 300
	detailImageWidth    = 1200
	detailImageHeight   = 600
	homeCardTechLimit   = 3
	homeRecommendations = 2
)

// AssetURLer resolves opaque asset references to CDN URLs. *content.Client satisfies it.
type AssetURLer interface {
	ImageURL(ref *models.ImageRef, width, height int) string
	FileURL(ref *models.FileRef) string
}

type LinkView struct {
	Name string
	URL  string
	Icon string
}

type Hero struct {
	Name        string
	Tagline     string
	Description string
	ImageURL    string
	ImageAlt    string
	CVURL       string
	Links       []LinkView
}

type ProjectCard struct {
	Title    string
	Summary  string
	Path     string
	ImageURL string
	DemoURL  string
	RepoURL  string
	Tech     []TechBadge
}

type RecommendationCard struct {
	Quote      string
	AuthorName string
	Byline     string
	AvatarURL  string
}

type HomeView struct {
	Hero            Hero
	Featured        []ProjectCard
	Recommendations []RecommendationCard
	Skills          *SkillsSection
}

type ProjectsView struct {
	Projects  []ProjectCard
	StudioURL string
}

type ProjectView struct {
	Title       string
	Summary     string
	ImageURL    string
	Tech        []TechBadge
	Description template.HTML
	DemoURL     string
	RepoURL     string
}

type ContactView struct {
	Links []LinkView
}

type NotFoundView struct {
	Path string
}

// HomeData is everything the home page fetched. Nil or empty fields drop their section.
type HomeData struct {
	Bio             *models.Bio
	Featured        []models.Project
	Recommendations []models.Recommendation
	Skills          []models.Skill
}

// BuildHome maps fetched content to the home view, falling back to the site hero copy.
func (r *Renderer) BuildHome(data HomeData) HomeView {
	view := HomeView{
		Hero:   r.buildHero(data.Bio),
		Skills: GroupSkills(data.Skills, r.site.SkillCategoryOrder),
	}

	for _, p := range data.Featured {
		view.Featured = append(view.Featured, r.projectCard(p, homeCardWidth, homeCardHeight, homeCardTechLimit))
	}

	recs := data.Recommendations
	if len(recs) > homeRecommendations {
		recs = recs[:homeRecommendations]
	}
	for _, rec := range recs {
		card := RecommendationCard{
			Quote:      rec.Quote,
			AuthorName: rec.AuthorName,
			Byline:     byline(rec.Position, rec.Company),
		}
		if !rec.Avatar.IsZero() {
			card.AvatarURL = r.assets.ImageURL(rec.Avatar, avatarImageSize, avatarImageSize)
		}
		view.Recommendations = append(view.Recommendations, card)
	}
	return view
}

func (r *Renderer) buildHero(bio *models.Bio) Hero {
	fallback := r.site.Hero
	hero := Hero{
		Name:        fallback.Name,
		Tagline:     fallback.Tagline,
		Description: fallback.Description,
		Links:       siteLinks(r.site.SocialLinks),
	}
	if bio == nil {
		return hero
	}

	hero.Name = firstNonEmpty(bio.Name, fallback.Name)
	hero.Tagline = firstNonEmpty(bio.Tagline, fallback.Tagline)
	hero.Description = firstNonEmpty(bio.Description, fallback.Description)
	hero.ImageAlt = hero.Name
	if !bio.ProfileImage.IsZero() {
		hero.ImageURL = r.assets.ImageURL(bio.ProfileImage, profileImageSize, profileImageSize)
	}
	if !bio.CVFile.IsZero() {
		hero.CVURL = r.assets.FileURL(bio.CVFile)
	}

	var links []LinkView
	for _, link := range bio.SocialLinks {
		if link.URL == "" {
			continue
		}
		links = append(links, LinkView{Name: firstNonEmpty(link.Platform, link.URL), URL: link.URL})
	}
	if len(links) > 0 {
		hero.Links = links
	}
	return hero
}

// BuildProjects maps the listing, preserving store order.
func (r *Renderer) BuildProjects(projects []models.Project) ProjectsView {
	view := ProjectsView{StudioURL: r.site.StudioURL}
	for _, p := range projects {
		view.Projects = append(view.Projects, r.projectCard(p, listingCardWidth, listingCardHeight, 0))
	}
	return view
}

func (r *Renderer) BuildProject(p models.Project) ProjectView {
	view := ProjectView{
		Title:       p.Title,
		Summary:     p.Summary,
		Tech:        TechBadges(p.Tech, 0),
		Description: r.markdown(p.Description),
		DemoURL:     p.DemoURL,
		RepoURL:     p.RepoURL,
	}
	if !p.MainImage.IsZero() {
		view.ImageURL = r.assets.ImageURL(p.MainImage, detailImageWidth, detailImageHeight)
	}
	return view
}

func (r *Renderer) BuildContact() ContactView {
	return ContactView{Links: siteLinks(r.site.SocialLinks)}
}

func (r *Renderer) projectCard(p models.Project, width, height, techLimit int) ProjectCard {
	card := ProjectCard{
		Title:   p.Title,
		Summary: p.Summary,
		Path:    p.Path(),
		DemoURL: p.DemoURL,
		RepoURL: p.RepoURL,
		Tech:    TechBadges(p.Tech, techLimit),
	}
	if !p.MainImage.IsZero() {
		card.ImageURL = r.assets.ImageURL(p.MainImage, width, height)
	}
	return card
}

func siteLinks(links []config.Link) []LinkView {
	views := make([]LinkView, 0, len(links))
	for _, link := range links {
		views = append(views, LinkView{Name: link.Name, URL: link.URL, Icon: link.Icon})
	}
	return views
}

func byline(position, company string) string {
	switch {
	case position != "" && company != "":
		return position + " at " + company
	case position != "":
		return position
	default:
		return company
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
