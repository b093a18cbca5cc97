// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The only entity is Todo. Its identity is assigned by whichever repository
// adapter persists it; the domain itself never generates ids.
package domain
