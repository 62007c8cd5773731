package kernel_test

import (
	"testing"

	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, kernel.PaginationOptions{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, kernel.PaginationOptions{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, 45, kernel.PaginationOptions{Page: 4, PageSize: 15}.Offset())
}

func TestNewPage(t *testing.T) {
	page := kernel.NewPage(kernel.PaginationOptions{Page: 2, PageSize: 10}, 25)

	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Pages, "partial last page still counts")
}

func TestNewPageZeroSize(t *testing.T) {
	page := kernel.NewPage(kernel.PaginationOptions{Page: 1, PageSize: 0}, 25)
	assert.Equal(t, 0, page.Pages)
}
