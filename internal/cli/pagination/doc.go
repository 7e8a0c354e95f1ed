// Package pagination holds the sort and paging flags shared by the list
// commands and the dashboard.
package pagination
