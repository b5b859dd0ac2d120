package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/repository"
	"github.com/guttosm/coating-service/internal/service/cache"
)

var (
	// ErrPostNotFound is returned when a slug does not name a published post.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidPost is returned when a post source cannot be parsed or is incomplete.
	ErrInvalidPost = errors.New("invalid post")
)

const frontMatterDelim = "---"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BlogService manages markdown posts and renders them to sanitized HTML.
type BlogService interface {
	List(ctx context.Context, limit, skip int) ([]model.Post, int64, error)
	Get(ctx context.Context, slug string) (*model.RenderedPost, error)
	Save(ctx context.Context, source []byte) (*model.Post, error)
	Delete(ctx context.Context, slug string) error
	ImportDir(ctx context.Context, dir string) (int, error)
}

// BlogServiceImpl implements BlogService.
type BlogServiceImpl struct {
	repo     repository.PostRepositoryInterface
	rendered cache.Cache[string, string]
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	baseURL  string
	now      func() time.Time
}

// NewBlogService creates a blog service. baseURL is the public site root
// used in share links. rendered may be nil to render on every read.
func NewBlogService(repo repository.PostRepositoryInterface, rendered cache.Cache[string, string], baseURL string) *BlogServiceImpl {
	return &BlogServiceImpl{
		repo:     repo,
		rendered: rendered,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy:  newPostPolicy(),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func newPostPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// List returns published posts without their bodies, newest first.
func (s *BlogServiceImpl) List(ctx context.Context, limit, skip int) ([]model.Post, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrRepositoryNotConfigured
	}
	posts, err := s.repo.ListPublished(ctx, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	total, err := s.repo.CountPublished(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	return posts, total, nil
}

// Get returns a published post with its rendered body and share links.
func (s *BlogServiceImpl) Get(ctx context.Context, slug string) (*model.RenderedPost, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil || !p.Published {
		return nil, ErrPostNotFound
	}

	html, err := s.render(p)
	if err != nil {
		return nil, err
	}
	return &model.RenderedPost{
		Post:       *p,
		HTML:       html,
		ShareLinks: s.ShareLinks(p),
	}, nil
}

// Save parses markdown with YAML front matter and creates or replaces the
// post with its slug.
func (s *BlogServiceImpl) Save(ctx context.Context, source []byte) (*model.Post, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	p, err := ParsePost(source)
	if err != nil {
		return nil, err
	}
	if p.Published && p.PublishedAt == nil {
		at := s.now().UTC()
		p.PublishedAt = &at
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return saved, nil
}

// Delete removes a post by slug.
func (s *BlogServiceImpl) Delete(ctx context.Context, slug string) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	deleted, err := s.repo.Delete(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		return ErrPostNotFound
	}
	return nil
}

// ImportDir saves every .md file in dir. Files that fail to parse are
// logged and skipped; the count of saved posts is returned.
func (s *BlogServiceImpl) ImportDir(ctx context.Context, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return 0, fmt.Errorf("list posts in %s: %w", dir, err)
	}

	imported := 0
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return imported, fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := s.Save(ctx, source); err != nil {
			if errors.Is(err, ErrInvalidPost) {
				log.Warn().Err(err).Str("file", path).Msg("Skipping invalid post")
				continue
			}
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ShareLinks builds prefilled share URLs for the post's public page.
func (s *BlogServiceImpl) ShareLinks(p *model.Post) model.ShareLinks {
	page := s.baseURL + "/blog/" + url.PathEscape(p.Slug)
	return model.ShareLinks{
		Twitter:  "https://twitter.com/intent/tweet?" + url.Values{"url": {page}, "text": {p.Title}}.Encode(),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?" + url.Values{"url": {page}}.Encode(),
		Facebook: "https://www.facebook.com/sharer/sharer.php?" + url.Values{"u": {page}}.Encode(),
	}
}

func (s *BlogServiceImpl) render(p *model.Post) (string, error) {
	key := p.Slug + "@" + strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)
	if s.rendered != nil {
		if html, ok := s.rendered.Get(key); ok {
			return html, nil
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(p.Markdown), &buf); err != nil {
		return "", fmt.Errorf("render post %s: %w", p.Slug, err)
	}
	html := strings.TrimSpace(s.policy.Sanitize(buf.String()))

	if s.rendered != nil {
		s.rendered.Set(key, html)
	}
	return html, nil
}

// ParsePost splits YAML front matter from the markdown body and validates
// the result. A missing slug is derived from the title.
func ParsePost(source []byte) (*model.Post, error) {
	meta, body, err := splitFrontMatter(string(source))
	if err != nil {
		return nil, err
	}

	var p model.Post
	if err := yaml.Unmarshal([]byte(meta), &p); err != nil {
		return nil, fmt.Errorf("%w: front matter: %w", ErrInvalidPost, err)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Markdown = strings.TrimSpace(body)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}

	var problems []string
	if p.Title == "" {
		problems = append(problems, "title is required")
	}
	if !slugPattern.MatchString(p.Slug) {
		problems = append(problems, fmt.Sprintf("slug %q must be lowercase words joined by hyphens", p.Slug))
	}
	if p.Markdown == "" {
		problems = append(problems, "body is empty")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPost, strings.Join(problems, "; "))
	}
	return &p, nil
}

func splitFrontMatter(source string) (meta, body string, err error) {
	source = strings.TrimPrefix(strings.ReplaceAll(source, "\r\n", "\n"), "\ufeff")
	if !strings.HasPrefix(source, frontMatterDelim+"\n") {
		return "", "", fmt.Errorf("%w: missing front matter", ErrInvalidPost)
	}
	rest := source[len(frontMatterDelim)+1:]

	end := strings.Index(rest, "\n"+frontMatterDelim)
	if strings.HasPrefix(rest, frontMatterDelim) {
		end = 0
	} else if end >= 0 {
		end++
	}
	if end < 0 {
		return "", "", fmt.Errorf("%w: unterminated front matter", ErrInvalidPost)
	}
	meta = rest[:end]
	body = strings.TrimPrefix(rest[end+len(frontMatterDelim):], "\n")
	return meta, body, nil
}

// Slugify turns a title into a URL slug, dropping accents.
func Slugify(title string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
