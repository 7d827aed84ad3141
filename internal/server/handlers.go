package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/output"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/parser"
)

const weeklySheetHint = "Make sure your file contains weekly sheets (Wk6, Wk7, etc.) with email brief data."

// Response headers describing a conversion.
const (
	HeaderTaskCount      = "X-Task-Count"
	HeaderRejectionCount = "X-Rejection-Count"
	HeaderSheetFailures  = "X-Sheet-Failures"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type weeksResponse struct {
	BookName string   `json:"book_name"`
	Weeks    []string `json:"weeks"`
}

func (s *Server) weeks(c *gin.Context) {
	file, header, ok := s.upload(c)
	if !ok {
		return
	}
	defer file.Close()

	wb, err := dtcbrief.ReadWorkbook(file, header.Filename, false)
	if err != nil {
		respondError(c, err)
		return
	}
	weeks := parser.AvailableWeeks(wb)
	if len(weeks) == 0 {
		respondError(c, &models.EmptyInputError{BookName: wb.BookName, Sheets: wb.SheetNames()})
		return
	}
	c.JSON(http.StatusOK, weeksResponse{BookName: wb.BookName, Weeks: weeks})
}

func (s *Server) convert(c *gin.Context) {
	file, header, ok := s.upload(c)
	if !ok {
		return
	}
	defer file.Close()

	format, err := output.ParseFormat(c.DefaultPostForm("format", string(output.FormatCSV)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	opts := s.cfg.Defaults
	if brand := c.PostForm("brand"); brand != "" {
		opts.Brand = brand
	}
	if weeks := formList(c.PostFormArray("weeks")); len(weeks) > 0 {
		opts.Weeks = weeks
	}
	if v := c.PostForm("launches"); v != "" {
		launches, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid launches value: %q (must be true or false)", v)})
			return
		}
		opts.IncludeLaunches = launches
	}

	result, convErr := dtcbrief.ConvertReader(file, header.Filename, opts)
	if result == nil {
		respondError(c, convErr)
		return
	}

	data, err := output.Bytes(result, format)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_ClickUp_Import%s", result.Brand, format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header(HeaderTaskCount, strconv.Itoa(len(result.Tasks)))
	c.Header(HeaderRejectionCount, strconv.Itoa(len(result.Rejections)))
	if len(result.SheetFailures) > 0 {
		names := make([]string, 0, len(result.SheetFailures))
		for _, f := range result.SheetFailures {
			names = append(names, f.Sheet)
		}
		c.Header(HeaderSheetFailures, strings.Join(names, ","))
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}

// upload fetches the "file" form field, answering 400 when it is absent.
func (s *Server) upload(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing upload field \"file\"", Hint: "Upload an .xlsx DTC calendar."})
		return nil, nil, false
	}
	return file, header, true
}

// respondError maps pipeline errors to status codes and actionable messages.
func respondError(c *gin.Context, err error) {
	var empty *dtcbrief.EmptyInputError
	switch {
	case errors.As(err, &empty):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Hint: weeklySheetHint})
	case errors.Is(err, dtcbrief.ErrUnknownBrand), errors.Is(err, dtcbrief.ErrUnknownWeek):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case dtcbrief.IsStructural(err):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Hint: "Check your Excel file format."})
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Conversion failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// formList accepts both repeated fields and comma-separated values.
func formList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
