// Package remote implements store.TodoRepository on top of a REST document
// collection (restapi.fr style): POST to the collection root creates, PUT to
// /<id> replaces, GET lists or fetches, and documents carry their identity in
// an "_id" field.
package remote
