// Package porter provides the Porter aggregate: the profile of a delivery
// agent with identity, contact details, star rating, and the last location
// the agent's device reported. The reported location is what lets accept
// and advance operations attach a verified position to the delivery.
package porter
