// Package truck provides the Truck aggregate, the allocatable unit of delivery
// capacity, and the Status state machine governing its allocation.
//
// Key business rules:
//   - Trucks are created Idle at the origin
//   - Only an Idle truck can be allocated, which moves it to Traveling
//   - A Traveling truck whose pickup was rejected is released back to Idle
//   - Completions reported by the world move a truck to Idle or ArriveWarehouse
package truck
