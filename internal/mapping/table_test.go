package mapping_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retailops/backoffice/internal/mapping"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

type widget struct {
	Code  string
	Label string
	Count string
}

func widgetColumns() []mapping.Column[widget] {
	return []mapping.Column[widget]{
		{
			Name:       "Code",
			Identifier: true,
			Get:        func(w *widget) string { return w.Code },
			Set: func(_ context.Context, w *widget, v string) error {
				w.Code = v
				return nil
			},
		},
		{
			Name: "Label",
			Get:  func(w *widget) string { return w.Label },
			Set: func(_ context.Context, w *widget, v string) error {
				w.Label = v
				return nil
			},
		},
		{
			Name: "Count",
			Get:  func(w *widget) string { return w.Count },
			Set: func(_ context.Context, w *widget, v string) error {
				if v == "bad" {
					return errors.New("not a number")
				}
				w.Count = v
				return nil
			},
		},
	}
}

var _ = Describe("Table", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("NewTable", func() {
		It("should accept a valid column set", func() {
			t, err := mapping.NewTable(widgetColumns())
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Headers()).To(Equal([]string{"Code", "Label", "Count"}))
			Expect(t.Identifier().Name).To(Equal("Code"))
		})

		It("should reject duplicate column names", func() {
			cols := widgetColumns()
			cols[1].Name = "Code"
			_, err := mapping.NewTable(cols)
			Expect(srvErrors.IsColumnMappingError(err)).To(BeTrue())
		})

		It("should reject a table without an identifier", func() {
			cols := widgetColumns()
			cols[0].Identifier = false
			_, err := mapping.NewTable(cols)
			Expect(srvErrors.IsColumnMappingError(err)).To(BeTrue())
		})

		It("should reject a table with two identifiers", func() {
			cols := widgetColumns()
			cols[1].Identifier = true
			_, err := mapping.NewTable(cols)
			Expect(srvErrors.IsColumnMappingError(err)).To(BeTrue())
		})

		It("should reject a column without a getter", func() {
			cols := widgetColumns()
			cols[1].Get = nil
			_, err := mapping.NewTable(cols)
			Expect(srvErrors.IsColumnMappingError(err)).To(BeTrue())
		})
	})

	Describe("Export", func() {
		It("should render an entity in column order", func() {
			t, err := mapping.NewTable(widgetColumns())
			Expect(err).NotTo(HaveOccurred())

			row := t.Export(&widget{Code: "w-1", Label: "Widget", Count: "3"})
			Expect(row).To(Equal([]string{"w-1", "Widget", "3"}))
		})
	})

	Describe("Apply", func() {
		It("should copy present cells and skip the identifier", func() {
			t, err := mapping.NewTable(widgetColumns())
			Expect(err).NotTo(HaveOccurred())

			w := widget{Code: "w-1", Label: "old"}
			failures := t.Apply(ctx, &w, map[string]string{
				"Code":  "overwritten",
				"Label": "new",
			})

			Expect(failures).To(BeEmpty())
			Expect(w.Code).To(Equal("w-1"))
			Expect(w.Label).To(Equal("new"))
		})

		It("should leave fields alone when the column is absent", func() {
			t, err := mapping.NewTable(widgetColumns())
			Expect(err).NotTo(HaveOccurred())

			w := widget{Label: "keep"}
			failures := t.Apply(ctx, &w, map[string]string{"Count": "5"})

			Expect(failures).To(BeEmpty())
			Expect(w.Label).To(Equal("keep"))
			Expect(w.Count).To(Equal("5"))
		})

		// Given a row where one setter fails
		// When the row is applied
		// Then the failure is keyed by column and other columns still apply
		It("should collect setter failures per column", func() {
			t, err := mapping.NewTable(widgetColumns())
			Expect(err).NotTo(HaveOccurred())

			w := widget{}
			failures := t.Apply(ctx, &w, map[string]string{
				"Label": "new",
				"Count": "bad",
			})

			Expect(failures).To(HaveKey("Count"))
			Expect(failures["Count"]).To(MatchError("not a number"))
			Expect(w.Label).To(Equal("new"))
		})
	})
})
