package content

// Query is a named, side-effect free read against the content store.
// GROQ text never contains caller input; parameters are bound separately as $name.
type Query struct {
	Name string
	GROQ string
	Tags []string
}

// Params are bound to $name placeholders in a query.
type Params map[string]any

// Cache tags attached to fetches so rendered pages can be invalidated per content kind.
const (
	TagHomepage        = "homepage"
	TagProjects        = "projects"
	TagBio             = "bio"
	TagRecommendations = "recommendations"
	TagSkills          = "skills"
)

// ProjectTag is the cache tag for a single project detail page.
func ProjectTag(slug string) string {
	return "project:" + slug
}

// TagForType maps a content-store document type to the cache tag its fetches carry.
func TagForType(docType string) (string, bool) {
	switch docType {
	case "project":
		return TagProjects, true
	case "bio":
		return TagBio, true
	case "recommendation":
		return TagRecommendations, true
	case "skill":
		return TagSkills, true
	}
	return "", false
}

const projectProjection = `{
  _id,
  _type,
  title,
  slug,
  summary,
  description,
  mainImage,
  tech,
  demoUrl,
  repoUrl,
  featured,
  publishedAt
}`

var (
	FeaturedProjectsQuery = Query{
		Name: "featuredProjects",
		GROQ: `*[_type == "project" && featured == true] | order(publishedAt desc)[0...3] ` + projectProjection,
		Tags: []string{TagHomepage, TagProjects},
	}

	AllProjectsQuery = Query{
		Name: "allProjects",
		GROQ: `*[_type == "project"] | order(publishedAt desc) ` + projectProjection,
		Tags: []string{TagProjects, TagHomepage},
	}

	ProjectBySlugQuery = Query{
		Name: "projectBySlug",
		GROQ: `*[_type == "project" && slug.current == $slug][0] ` + projectProjection,
		Tags: []string{TagProjects},
	}

	ProjectSlugsQuery = Query{
		Name: "projectSlugs",
		GROQ: `*[_type == "project" && defined(slug.current)]{ slug }`,
		Tags: []string{TagProjects},
	}

	RecommendationsQuery = Query{
		Name: "recommendations",
		GROQ: `*[_type == "recommendation"] | order(_createdAt desc) {
  _id,
  _type,
  authorName,
  position,
  company,
  quote,
  avatar,
  featured
}`,
		Tags: []string{TagHomepage, TagRecommendations},
	}

	BioQuery = Query{
		Name: "bio",
		GROQ: `*[_type == "bio"][0] {
  _id,
  _type,
  name,
  tagline,
  description,
  profileImage,
  email,
  cvFile,
  socialLinks
}`,
		Tags: []string{TagHomepage, TagBio},
	}

	// proficiency is a string in the store, so rank ordering happens in SkillRepo.
	SkillsQuery = Query{
		Name: "skills",
		GROQ: `*[_type == "skill"] | order(name asc) {
  _id,
  _type,
  name,
  icon,
  proficiency,
  category,
  description
}`,
		Tags: []string{TagHomepage, TagSkills},
	}

	ConnectionCheckQuery = Query{
		Name: "connectionCheck",
		GROQ: `*[_type == "project"][0...1]{title}`,
	}
)
