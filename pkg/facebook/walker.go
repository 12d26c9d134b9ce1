package facebook

import "encoding/json"

// page is one raw page of a paginated Graph collection
type page struct {
	Data   json.RawMessage `json:"data"`
	Paging *Paging         `json:"paging"`
}

// WalkPages follows a paginated collection from startURL, invoking visit
// with each page's raw data array, until paging.next is absent or empty.
// Transport failures are returned without retry and abort the walk; a page
// with empty data and no cursor terminates normally.
func (c *Client) WalkPages(startURL string, visit func(data json.RawMessage) error) error {
	cursor := startURL
	for cursor != "" {
		var p page
		if err := c.GetJSON(cursor, &p); err != nil {
			return err
		}

		if len(p.Data) > 0 {
			if err := visit(p.Data); err != nil {
				return err
			}
		}

		if p.Paging == nil {
			break
		}
		cursor = p.Paging.Next
	}
	return nil
}

// WalkCollection walks a paginated collection decoding each page's data
// into a slice of T before handing it to visit. A data array that fails to
// decode surfaces as a parsing error and aborts the walk.
func WalkCollection[T any](c *Client, startURL string, visit func(items []T) error) error {
	return c.WalkPages(startURL, func(data json.RawMessage) error {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return &Error{
				Type:    ErrorTypeParsing,
				Message: "failed to decode collection page: " + err.Error(),
				URL:     startURL,
			}
		}
		return visit(items)
	})
}
