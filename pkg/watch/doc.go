// Package watch provides property observation for stateful gauge entities.
//
// An entity declares the fixed set of properties that participate in change
// propagation by owning a [Set]. Dependents register a [Handler] for a named
// property with [Set.Watch] and receive a [Change] carrying the property name
// and its old and new values. Each registration returns a [Handle] whose
// Remove method tears the subscription down; [Handles] collects several
// handles so they can be removed together, which is how a scale rewires its
// subscriptions when its scaler is replaced.
//
// # Ordering
//
// Notification is synchronous. [Set.Notify] calls the handlers watching the
// named property in registration order, then the handlers registered for
// [Any], before it returns. Handlers run outside the set's lock, so a handler
// may read the entity, watch other properties or remove its own handle.
//
// # Example
//
//	props := watch.NewSet("minimum", "maximum")
//	h, _ := props.Watch("maximum", func(c watch.Change) {
//	    fmt.Println(c.Name, c.Old, "->", c.New)
//	})
//	props.Notify("maximum", 100.0, 200.0) // prints: maximum 100 -> 200
//	h.Remove()
package watch
