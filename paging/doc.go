// Package paging implements page/size pagination with next and previous
// navigation hints.
//
// In-memory collections are paged with PaginateSlice; stores that can count
// and window on their own side supply a PagingFunc to Paginate:
//
//	result, err := paging.Paginate(params, func(offset, limit int) ([]*Item, int, error) {
//	    return repo.List(ctx, offset, limit)
//	})
//
// A page past the end yields empty data and a previous hint; it is never an
// error.
package paging
