// Package gamesave persists game-master sessions of The Whispering Library.
//
// A Master turns a chat history into a Record, names it after the player
// and the save time, and writes it as indented JSON to a Store:
//
//	store := gamesave.NewDiskStore("saves")
//	gm := gamesave.NewMaster(store)
//	res, err := gm.Save(ctx, history)
//	// res.Name == "Arwen_20260301_120000.json"
//
// Restart saves whatever history exists and returns the line the game
// master speaks before narrating the opening scene again.
//
// Two stores are provided: DiskStore writes files under a directory and
// S3Store writes objects under a bucket prefix.
package gamesave
