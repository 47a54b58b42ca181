// Package ecs provides ECS adapters for tabletop's card notifications.
//
// The primary adapter is [NewDonburiStore], which bridges card events (enter,
// exit, input, press, release) into a [Donburi] world as typed events.
// Subscribe to [CardEventType] in your ECS systems to receive them. Stores
// created with [NewTrackingStore] also mirror each card's hover and held state
// onto an entity carrying the [CardState] component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	table.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
