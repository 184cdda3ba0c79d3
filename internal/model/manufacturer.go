package model

// Manufacturer is a vehicle maker, the root of the ownership chain.  This
// struct corresponds to a row in the `manufacturers` table.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique maker name.
type Manufacturer struct {
    ID   uint64 `json:"id"`   // manufacturers.id
    Name string `json:"name"` // manufacturers.name
}
