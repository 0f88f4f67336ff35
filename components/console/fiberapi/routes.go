package fiberapi

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/components/console/commands"
	"github.com/goliatone/go-billing-console/components/console/httpapi"
	"github.com/goliatone/go-billing-console/components/console/queries"
)

// ViewerResolver converts a fiber context into a console.ViewerContext.
type ViewerResolver func(*fiber.Ctx) console.ViewerContext

// Config wires fiber with the console controller, API and refresh stream.
type Config struct {
	Router         fiber.Router
	Controller     *console.Controller
	API            httpapi.Executor
	Broadcast      *console.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	// DefaultPage is where the bare base path redirects.
	DefaultPage string
	// KeepAlive is the SSE ping interval.
	KeepAlive time.Duration
}

// Register mounts console routes (HTML, JSON API, SSE) on a fiber router.
func Register(cfg Config) error {
	if cfg.Router == nil {
		return errors.New("fiberapi: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("fiberapi: controller is required")
	}
	base := strings.TrimRight(cfg.BasePath, "/")
	if base == "" {
		base = cfg.Controller.BasePath()
	}
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = DefaultViewerResolver
	}

	group := cfg.Router.Group(base)

	if cfg.API != nil {
		registerAPI(group.Group("/api"), cfg.API, resolver)
	}
	if cfg.Broadcast != nil {
		keepAlive := cfg.KeepAlive
		if keepAlive <= 0 {
			keepAlive = 15 * time.Second
		}
		group.Get("/api/events", eventStream(cfg.Broadcast, keepAlive))
	}

	if cfg.DefaultPage != "" {
		group.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect(base+"/"+cfg.DefaultPage, http.StatusFound)
		})
	}

	group.Get("/:page", func(c *fiber.Ctx) error {
		viewer := resolver(c)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(c.UserContext(), viewer, c.Params("page"), &buf); err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	return nil
}

func registerAPI(r fiber.Router, api httpapi.Executor, resolver ViewerResolver) {
	r.Get("/menu", func(c *fiber.Ctx) error {
		items, err := api.Menu(c.UserContext(), resolver(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	})

	r.Get("/pages/:page", func(c *fiber.Ctx) error {
		view, err := api.Page(c.UserContext(), queries.PageInput{Viewer: resolver(c), Page: c.Params("page")})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	})

	r.Get("/pages/:page/state", func(c *fiber.Ctx) error {
		state, err := api.State(c.UserContext(), queries.PageInput{Viewer: resolver(c), Page: c.Params("page")})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Post("/pages/:page/filters", func(c *fiber.Ctx) error {
		var payload httpapi.FilterRequest
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return respondStatus(c, http.StatusBadRequest, err)
		}
		state, err := api.SetFilter(c.UserContext(), commands.SetFilterInput{
			Viewer: resolver(c), Page: c.Params("page"), Key: payload.Key, Value: payload.Value,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Delete("/pages/:page/filters", func(c *fiber.Ctx) error {
		state, err := api.ResetFilters(c.UserContext(), commands.ResetFiltersInput{Viewer: resolver(c), Page: c.Params("page")})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Patch("/pages/:page/listing", func(c *fiber.Ctx) error {
		var payload console.ListingUpdate
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return respondStatus(c, http.StatusBadRequest, err)
		}
		state, err := api.UpdateListing(c.UserContext(), commands.UpdateListingInput{
			Viewer: resolver(c), Page: c.Params("page"), Update: payload,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Post("/pages/:page/modals/:modal", func(c *fiber.Ctx) error {
		var payload httpapi.ModalRequest
		if body := c.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondStatus(c, http.StatusBadRequest, err)
			}
		}
		state, err := api.OpenModal(c.UserContext(), commands.OpenModalInput{
			Viewer: resolver(c), Page: c.Params("page"), Modal: c.Params("modal"), ID: payload.ID,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Delete("/pages/:page/modals/:modal", func(c *fiber.Ctx) error {
		state, err := api.CloseModal(c.UserContext(), commands.CloseModalInput{
			Viewer: resolver(c), Page: c.Params("page"), Modal: c.Params("modal"),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Post("/navigate", func(c *fiber.Ctx) error {
		var payload httpapi.NavigateRequest
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return respondStatus(c, http.StatusBadRequest, err)
		}
		if payload.To == "" {
			return respondStatus(c, http.StatusBadRequest, errors.New("navigation target is required"))
		}
		state, err := api.Navigate(c.UserContext(), commands.NavigateInput{
			Viewer: resolver(c), From: payload.From, To: payload.To,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	r.Post("/pages/:page/mutations", func(c *fiber.Ctx) error {
		var payload console.MutationRequest
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return respondStatus(c, http.StatusBadRequest, err)
		}
		result, err := api.Mutate(c.UserContext(), commands.MutateInput{
			Viewer:          resolver(c),
			Page:            c.Params("page"),
			MutationRequest: payload,
			RequestID:       c.Get(fiber.HeaderXRequestID),
		})
		if err != nil {
			return respondError(c, err)
		}
		status := http.StatusOK
		if payload.Action == console.MutationCreate {
			status = http.StatusCreated
		}
		return c.Status(status).JSON(result)
	})
}

func eventStream(hook *console.BroadcastHook, keepAlive time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		events, cancel := hook.Subscribe()
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(keepAlive)
			defer ticker.Stop()
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return
					}
					if err := writeEvent(w, event); err != nil {
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": ping\n\n"); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		})
		return nil
	}
}

func writeEvent(w *bufio.Writer, event console.ResourceEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: resource\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// DefaultViewerResolver reads the viewer from locals set by auth middleware
// and infers the locale from the request.
func DefaultViewerResolver(c *fiber.Ctx) console.ViewerContext {
	var viewer console.ViewerContext
	if v, ok := c.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := c.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(c)
	return viewer
}

func inferLocale(c *fiber.Ctx) string {
	if locale, ok := c.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(c *fiber.Ctx, err error) error {
	return respondStatus(c, httpapi.StatusFor(err), err)
}

func respondStatus(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(httpapi.ErrorBody{Error: err.Error()})
}
