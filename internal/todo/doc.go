// Package todo holds the task model, the in-memory task store and the list projection.
//
// Tasks are stored as a JSON array under the "todos" key of the local state:
//
//	[
//	  {
//	    "id": "8f14e45f-ceea-467f-a0e6-2f3b5e1c9a11",
//	    "text": "Walk the dog",
//	    "completed": false,
//	    "priority": "medium",
//	    "createdAt": "2024-01-01T09:30:00Z",
//	    "location": "Oslo",
//	    "weather": {"temperature": 4, "condition": "Snowy", "icon": "https://openweathermap.org/img/wn/01d@2x.png"}
//	  }
//	]
//
// # Store
//
// Store owns the collection. Every mutation is applied under a lock and
// followed by a save of the full collection through its Persister. Save
// failures are logged, never returned.
//
// # Projection
//
// Project filters (all, active, completed) and stably sorts (newest, oldest,
// priority-high, priority-low) a copy of the collection for display.
//
// # Validation
//
// ValidateState checks raw persisted state against an embedded JSON Schema
// (draft 2020-12), falling back to minimal structural checks when no schema
// can be compiled.
package todo
