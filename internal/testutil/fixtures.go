package testutil

// Layout fixtures in the text format read by game.ParseLayout.
// '%' wall, '.' food, 'o' capsule, 'P' pacman, 'G' ghost.

// OpenGrid5x5 is a wall-free 5x5 board: Pacman at (2,2), one ghost two
// cells south at (2,4), one food pellet at (0,0).
const OpenGrid5x5 = `
.    
     
  P  
     
  G  `

// Corridor is a one-row corridor with Pacman between two food pellets
// and no ghosts.
const Corridor = `
%%%%%%%
%. P .%
%%%%%%%`

// CapsuleTrap has a capsule next to Pacman and a ghost one step past it.
const CapsuleTrap = `
%%%%%%%
%P oG.%
%%%%%%%`

// SmallClassic is a small walled maze with two ghosts and two capsules.
const SmallClassic = `
%%%%%%%%%%%%
%o....%....%
%.%%%.%.%%.%
%.%G......G%
%.%.%%%%%.%%
%....P....o%
%%%%%%%%%%%%`
