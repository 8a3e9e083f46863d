package ui

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/admin/templates/screens"
	"finitefield.org/campaign-site/internal/content"
)

// Screens returns the render targets for every registered sub-resource screen. Each
// screen loads its record when rendered, using the staff token on the render context.
func (h *Handlers) Screens() routes.Screens {
	return routes.Screens{
		AddPhoto: func(routes.Params) templ.Component {
			return load(func(ctx context.Context, token string) (int, error) {
				photos, err := h.content.ListPhotos(ctx, token)
				return len(photos), err
			}, func(n int) templ.Component { return screens.Shell(screens.AddShell(routes.CategoryPhoto, n)) })
		},
		ViewPhoto: func(p routes.Params) templ.Component {
			return load(h.photo(p), func(photo *content.Photo) templ.Component { return screens.PhotoView(*photo) })
		},
		EditPhoto: func(p routes.Params) templ.Component {
			return load(h.photo(p), func(photo *content.Photo) templ.Component { return screens.Shell(screens.PhotoShell(*photo)) })
		},
		AddVideo: func(routes.Params) templ.Component {
			return load(func(ctx context.Context, token string) (int, error) {
				videos, err := h.content.ListVideos(ctx, token)
				return len(videos), err
			}, func(n int) templ.Component { return screens.Shell(screens.AddShell(routes.CategoryVideo, n)) })
		},
		PlayVideo: func(p routes.Params) templ.Component {
			return load(h.video(p), func(video *content.Video) templ.Component { return screens.VideoPlayer(*video) })
		},
		EditVideo: func(p routes.Params) templ.Component {
			return load(h.video(p), func(video *content.Video) templ.Component { return screens.Shell(screens.VideoShell(*video)) })
		},
		AddPress: func(routes.Params) templ.Component {
			return load(func(ctx context.Context, token string) (int, error) {
				articles, err := h.content.ListPress(ctx, token)
				return len(articles), err
			}, func(n int) templ.Component { return screens.Shell(screens.AddShell(routes.CategoryPress, n)) })
		},
		ReadPress: func(p routes.Params) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				article, err := h.content.GetPress(ctx, custommw.TokenFromContext(ctx), p.Get("id"))
				if err != nil {
					return err
				}
				body, err := h.markdown.Render(article.Body)
				if err != nil {
					return err
				}
				return screens.PressReader(*article, body).Render(ctx, w)
			})
		},
		EditPress: func(p routes.Params) templ.Component {
			return load(h.press(p), func(article *content.PressArticle) templ.Component { return screens.Shell(screens.PressShell(*article)) })
		},
		ViewMessage: func(p routes.Params) templ.Component {
			return load(func(ctx context.Context, token string) (*content.Message, error) {
				return h.content.GetMessage(ctx, token, p.Get("id"))
			}, func(msg *content.Message) templ.Component { return screens.MessageDetail(*msg, h.now()) })
		},
	}
}

// Screen serves every registered screen. The route was resolved by the RouteInfo
// middleware, so the first registered template matching the path is the one rendered.
func (h *Handlers) Screen(w http.ResponseWriter, r *http.Request) {
	route, ok := custommw.ResolvedRouteFromContext(r.Context())
	if !ok || route.Render == nil {
		http.NotFound(w, r)
		return
	}
	title := route.Category.Label()
	h.renderPage(w, r, title, h.unread(r.Context()), route.Render(route.Params))
}

func (h *Handlers) photo(p routes.Params) func(context.Context, string) (*content.Photo, error) {
	return func(ctx context.Context, token string) (*content.Photo, error) {
		return h.content.GetPhoto(ctx, token, p.Get("id"))
	}
}

func (h *Handlers) video(p routes.Params) func(context.Context, string) (*content.Video, error) {
	return func(ctx context.Context, token string) (*content.Video, error) {
		return h.content.GetVideo(ctx, token, p.Get("id"))
	}
}

func (h *Handlers) press(p routes.Params) func(context.Context, string) (*content.PressArticle, error) {
	return func(ctx context.Context, token string) (*content.PressArticle, error) {
		return h.content.GetPress(ctx, token, p.Get("id"))
	}
}

// load defers fetch until render time and hands the result to view.
func load[T any](fetch func(context.Context, string) (T, error), view func(T) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		value, err := fetch(ctx, custommw.TokenFromContext(ctx))
		if err != nil {
			return err
		}
		return view(value).Render(ctx, w)
	})
}
