package models

// PageRequest mirrors the from/size query parameters. A nil *PageRequest means
// "no pagination". The page actually fetched is floor(from/size) with size rows,
// matching the offset semantics of the paginated endpoints.
type PageRequest struct {
	From int
	Size int
}

func (p *PageRequest) Offset() int {
	return (p.From / p.Size) * p.Size
}

func (p *PageRequest) Limit() int {
	return p.Size
}
