package tmdb

import (
	"context"
	"net/url"
	"strconv"

	"marquee/internal/core/catalog"
)

// appendDetails asks for credits and videos in the same round trip
const appendDetails = "videos,credits"

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (c *Client) list(ctx context.Context, path string, params url.Values) (catalog.Page, error) {
	var out catalog.Page
	if err := c.Fetch(ctx, path, params, &out); err != nil {
		return catalog.Page{}, err
	}
	return out, nil
}

// PopularMovies fetches /movie/popular
func (c *Client) PopularMovies(ctx context.Context, page int) (catalog.Page, error) {
	return c.list(ctx, "/movie/popular", pageParams(page))
}

// TopRatedMovies fetches /movie/top_rated
func (c *Client) TopRatedMovies(ctx context.Context, page int) (catalog.Page, error) {
	return c.list(ctx, "/movie/top_rated", pageParams(page))
}

// PopularTV fetches /tv/popular
func (c *Client) PopularTV(ctx context.Context, page int) (catalog.Page, error) {
	return c.list(ctx, "/tv/popular", pageParams(page))
}

// SearchMovies fetches /search/movie for a free text query
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (catalog.Page, error) {
	p := pageParams(page)
	p.Set("query", query)
	return c.list(ctx, "/search/movie", p)
}

// MovieDetails fetches /movie/{id} with credits and videos appended
func (c *Client) MovieDetails(ctx context.Context, id int) (catalog.Details, error) {
	return c.details(ctx, "/movie/"+strconv.Itoa(id))
}

// TVDetails fetches /tv/{id} with credits and videos appended
func (c *Client) TVDetails(ctx context.Context, id int) (catalog.Details, error) {
	return c.details(ctx, "/tv/"+strconv.Itoa(id))
}

func (c *Client) details(ctx context.Context, path string) (catalog.Details, error) {
	var out catalog.Details
	if err := c.Fetch(ctx, path, url.Values{"append_to_response": {appendDetails}}, &out); err != nil {
		return catalog.Details{}, err
	}
	return out, nil
}

// MovieReviews fetches /movie/{id}/reviews
func (c *Client) MovieReviews(ctx context.Context, id, page int) (catalog.ReviewPage, error) {
	return c.reviews(ctx, "/movie/"+strconv.Itoa(id)+"/reviews", page)
}

// TVReviews fetches /tv/{id}/reviews with the same locale as every other call
func (c *Client) TVReviews(ctx context.Context, id, page int) (catalog.ReviewPage, error) {
	return c.reviews(ctx, "/tv/"+strconv.Itoa(id)+"/reviews", page)
}

func (c *Client) reviews(ctx context.Context, path string, page int) (catalog.ReviewPage, error) {
	var out catalog.ReviewPage
	if err := c.Fetch(ctx, path, pageParams(page), &out); err != nil {
		return catalog.ReviewPage{}, err
	}
	return out, nil
}

// MovieImages fetches /movie/{id}/images for the locale base language plus
// untagged images
func (c *Client) MovieImages(ctx context.Context, id int) (catalog.Images, error) {
	var out catalog.Images
	p := url.Values{"include_image_language": {c.imgLangs}}
	if err := c.Fetch(ctx, "/movie/"+strconv.Itoa(id)+"/images", p, &out); err != nil {
		return catalog.Images{}, err
	}
	return out, nil
}

// Ping checks reachability and credentials through /configuration
func (c *Client) Ping(ctx context.Context) error {
	return c.Fetch(ctx, "/configuration", nil, nil)
}
