package internal

import (
	"net/url"
	"strconv"
)

func loginURL(message, messageType string) string {
	q := url.Values{}
	q.Set("message", message)
	q.Set("messageType", messageType)
	return "/index.html?" + q.Encode()
}

func dashboardURL(team, message, messageType string) string {
	q := url.Values{}
	q.Set("team", team)
	if message != "" {
		q.Set("message", message)
		q.Set("messageType", messageType)
	}
	return "/dashboard.html?" + q.Encode()
}

func mapURL(cl *Clue, team string) string {
	q := url.Values{}
	q.Set("lat", formatCoord(cl.Location.Lat))
	q.Set("lng", formatCoord(cl.Location.Lng))
	q.Set("team", team)
	q.Set("code", cl.Code)
	return "/map.html?" + q.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
