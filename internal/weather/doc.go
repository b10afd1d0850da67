// Package weather provides a client for the National Weather Service API
// (api.weather.gov).
//
// A forecast lookup is a two-step exchange:
//   - GET /points/{lat},{lon} resolves the grid forecast endpoint for a coordinate
//   - GET on the resolved endpoint returns the ordered forecast periods
//
// Every request carries a User-Agent identifying this client, which the NWS
// API requires. No retries are attempted; any transport failure, non-2xx
// status or undecodable body fails the whole lookup.
//
// # Example Usage
//
//	client := weather.NewClient(weather.Config{}, logger)
//	defer client.Close()
//
//	report, err := client.Report(ctx, weather.Coordinate{Latitude: 39.7456, Longitude: -97.0892})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report)
//
// The underlying http.Client is shared by all lookups and released by Close.
package weather
