package server

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"congress-registration/internal/models"
	"congress-registration/internal/registration"
	"congress-registration/internal/schema"
	"congress-registration/internal/sheets"
	"congress-registration/internal/util"
)

const flashCookie = "flash"

func (h *handlers) showForm(c echo.Context) error {
	return c.Render(http.StatusOK, pageForm, newFormView(h.cfg.EventTitle, models.RegistrationForm{}))
}

func (h *handlers) submitForm(c echo.Context) error {
	form := new(models.RegistrationForm)
	if err := c.Bind(form); err != nil {
		view := newFormView(h.cfg.EventTitle, *form)
		view.Toast = &toast{Kind: "error", Text: registration.FailureMessage}
		return c.Render(http.StatusBadRequest, pageForm, view)
	}

	if err := c.Validate(form); err != nil {
		view := newFormView(h.cfg.EventTitle, *form)
		view.Errors = fieldErrors(err)
		return c.Render(http.StatusUnprocessableEntity, pageForm, view)
	}

	if _, err := h.sub.Submit(c.Request().Context(), *form); err != nil {
		logSubmitError(c, err)
		view := newFormView(h.cfg.EventTitle, *form)
		view.Toast = &toast{Kind: "error", Text: registration.FailureMessage}
		return c.Render(http.StatusBadGateway, pageForm, view)
	}

	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(registration.SuccessMessage),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/success")
}

func (h *handlers) showSuccess(c echo.Context) error {
	view := successView{Title: h.cfg.EventTitle}
	if ck, err := c.Cookie(flashCookie); err == nil && ck.Value != "" {
		if msg, err := url.QueryUnescape(ck.Value); err == nil {
			view.Toast = &toast{Kind: "success", Text: msg}
		}
		c.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	}
	return c.Render(http.StatusOK, pageSuccess, view)
}

func (h *handlers) apiRegister(c echo.Context) error {
	form := new(models.RegistrationForm)
	if err := c.Bind(form); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid input format", err.Error())
	}

	if err := c.Validate(form); err != nil {
		return errorResponse(c, http.StatusUnprocessableEntity, "Validation failed", fieldErrors(err))
	}

	out, err := h.sub.Submit(c.Request().Context(), *form)
	if err != nil {
		logSubmitError(c, err)
		return errorResponse(c, http.StatusBadGateway, registration.FailureMessage, nil)
	}
	return successResponse(c, http.StatusCreated, registration.SuccessMessage, out.Participant)
}

func (h *handlers) exportParticipants(c echo.Context) error {
	if !util.ValidHMAC(h.cfg.ExportSecret, "export:participants", c.QueryParam("token")) {
		return echo.NewHTTPError(http.StatusForbidden, "invalid token")
	}
	rows, err := h.ledger.ReadParticipants(c.Request().Context())
	if err != nil {
		log.Printf("export participants: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "ledger unavailable")
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	w.Header().Set(echo.HeaderContentDisposition, `attachment; filename="participants_`+time.Now().Format("20060102")+`.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] != sheets.Header[0] {
		if err := cw.Write(sheets.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(neutralizeFormulas(rows)); err != nil {
		return err
	}
	return nil
}

// neutralizeFormulas quotes cells a spreadsheet would evaluate as formulas.
func neutralizeFormulas(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
				cell = "'" + cell
			}
			out[i][j] = cell
		}
	}
	return out
}

func fieldErrors(err error) map[string]string {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return map[string]string{"form": err.Error()}
}

func logSubmitError(c echo.Context, err error) {
	kind := "unknown"
	var serr *registration.SubmissionError
	if errors.As(err, &serr) {
		kind = serr.Kind.String()
	}
	log.Printf("Error al registrar participante: kind=%s request_id=%s: %v",
		kind, c.Response().Header().Get(echo.HeaderXRequestID), err)
}
