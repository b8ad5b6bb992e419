// Package weather looks up current conditions for a free-form location.
//
// Lookups go to an OpenWeatherMap-compatible endpoint:
//
//	GET {base_url}/weather?q=<location>&appid=<api key>&units=metric
//
// Only three fields of the response are used:
//
//	{"main": {"temp": 12.3}, "weather": [{"main": "Clouds", "icon": "04d"}]}
//
// # Fallback
//
// Live lookups can fail for many reasons (no credential, network errors,
// non-200 responses, malformed bodies). None of those reach the caller of
// Resolver.Resolve: every failure is logged and replaced by a synthetic
// reading produced locally. A missing credential, or the placeholder
// "YOUR_API_KEY", skips the network entirely.
//
// Synthetic readings pick a condition uniformly from Sunny, Cloudy, Rainy,
// Stormy, Windy and Snowy, and an integer temperature uniformly from [1, 30].
// Their icon is always the clear-sky icon.
package weather
