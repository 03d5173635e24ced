// 18 Mar 2025
package gblocks

var FlagParams = (*CmdFlag).params
